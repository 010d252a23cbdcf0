// Package reportctx assembles the renderer-ready context for a finished scan
// and validates comparison requests. It is the platform-dispatch point:
// Android, iOS and Windows records come out of independent stores and need
// different scoring inputs.
package reportctx

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/MOYARU/mas/internal/render"
	"github.com/MOYARU/mas/internal/report"
	"github.com/MOYARU/mas/internal/reputation"
	"github.com/MOYARU/mas/internal/store"
)

var hashPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// archiveExt marks zipped source submissions. Reputation lookups only make
// sense for single compiled binaries.
const archiveExt = ".zip"

// Context is the merged, renderer-ready view of one scan.
type Context struct {
	Platform store.Platform
	Template string
	Fields   map[string]any
}

// Builder wires the stores and optional collaborators a report build needs.
// Resolvers are consulted in order; keep Android, iOS, Windows — that
// priority is the documented tie-break if a hash ever collides across stores.
type Builder struct {
	resolvers  []store.Resolver
	recent     store.RecentScans
	reputation reputation.Service
	renderer   render.Renderer
	pdf        *render.PDFCapability

	uploadsDir   string
	downloadsDir string
	hostOS       string // "windows" or "nix"
	logger       *slog.Logger
}

type Option func(*Builder)

func WithReputation(svc reputation.Service) Option {
	return func(b *Builder) { b.reputation = svc }
}

func WithRenderer(r render.Renderer) Option {
	return func(b *Builder) { b.renderer = r }
}

// WithPDF injects the optional PDF capability. Absent means CanRenderPDF
// reports false and callers fall back to JSON/HTML.
func WithPDF(pdf *render.PDFCapability) Option {
	return func(b *Builder) { b.pdf = pdf }
}

func WithDirs(uploads, downloads string) Option {
	return func(b *Builder) {
		b.uploadsDir = uploads
		b.downloadsDir = downloads
	}
}

// WithHostOS overrides the host OS tag. Tests and cross-host report
// generation set this; the default comes from the running system.
func WithHostOS(goos string) Option {
	return func(b *Builder) { b.hostOS = goos }
}

func NewBuilder(resolvers []store.Resolver, recent store.RecentScans, logger *slog.Logger, opts ...Option) *Builder {
	b := &Builder{
		resolvers:    resolvers,
		recent:       recent,
		uploadsDir:   "uploads",
		downloadsDir: "downloads",
		logger:       logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildContext looks the hash up across the platform stores, scores the
// matching record and merges in reputation and environment fields.
//
// Validation errors (ErrInvalidHash, ErrReportNotFound) return as-is;
// everything downstream of a successful lookup converts to a classified
// *ReportGenerationError with a user-safe message.
func (b *Builder) BuildContext(ctx context.Context, scanHash string) (*Context, error) {
	if !hashPattern.MatchString(scanHash) {
		return nil, ErrInvalidHash
	}

	var rec *store.ScanRecord
	for _, resolver := range b.resolvers {
		found, err := resolver.FindByHash(ctx, scanHash)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, b.generationError(scanHash, "cannot fetch scan record", err)
		}
		rec = found
		break
	}
	if rec == nil {
		return nil, ErrReportNotFound
	}

	out := &Context{Platform: rec.Platform, Fields: make(map[string]any, len(rec.Extra)+12)}
	for k, v := range rec.Extra {
		out.Fields[k] = v
	}
	out.Fields["file_name"] = rec.FileName
	out.Fields["app_name"] = rec.AppName
	out.Fields["package_id"] = rec.PackageID
	out.Fields["version_name"] = rec.VersionName
	if rec.CodeAnalysis != nil {
		out.Fields["code_analysis"] = rec.CodeAnalysis
	}
	if rec.BinaryAnalysis != nil {
		out.Fields["binary_analysis"] = rec.BinaryAnalysis
	}

	if err := b.dispatch(rec, out); err != nil {
		return nil, b.generationError(scanHash, "cannot score scan results", err)
	}

	b.attachReputation(ctx, rec, out, scanHash)

	if err := b.attachEnvironment(ctx, out, scanHash); err != nil {
		return nil, b.generationError(scanHash, "cannot assemble report context", err)
	}
	return out, nil
}

// dispatch picks the scoring input and template per platform.
func (b *Builder) dispatch(rec *store.ScanRecord, out *Context) error {
	switch rec.Platform {
	case store.PlatformAndroid:
		// Archive and package submissions render from the same template today.
		result, err := report.Score(rec.CodeAnalysis)
		if err != nil {
			return err
		}
		out.Fields["average_cvss"] = result.AverageCVSS
		out.Fields["security_score"] = result.SecurityScore
		out.Template = "android_report.html"

	case store.PlatformIOS:
		// Source archives carry code_analysis, compiled packages carry
		// binary_analysis; exactly one is populated per scan type.
		source := rec.CodeAnalysis
		if !isArchive(rec.FileName) {
			source = rec.BinaryAnalysis
		}
		result, err := report.Score(source)
		if err != nil {
			return err
		}
		out.Fields["average_cvss"] = result.AverageCVSS
		out.Fields["security_score"] = result.SecurityScore
		out.Template = "ios_report.html"

	case store.PlatformWindows:
		// No scoring is defined for Windows app scans.
		out.Template = "windows_report.html"
	}
	return nil
}

// attachReputation always sets the field; the lookup itself only runs for
// non-archive binaries. Lookup failures degrade to an absent verdict rather
// than failing the whole report.
func (b *Builder) attachReputation(ctx context.Context, rec *store.ScanRecord, out *Context, scanHash string) {
	out.Fields["reputation"] = nil
	if b.reputation == nil || isArchive(rec.FileName) {
		return
	}

	ext := strings.ToLower(filepath.Ext(rec.FileName))
	binPath := filepath.Join(b.uploadsDir, scanHash, scanHash+ext)
	res, err := b.reputation.Lookup(ctx, binPath, scanHash)
	if err != nil {
		b.logger.Warn("reputation lookup failed", "hash", scanHash, "error", err)
		return
	}
	out.Fields["reputation"] = res
}

func (b *Builder) attachEnvironment(ctx context.Context, out *Context, scanHash string) error {
	proto := "file://"
	hostOS := "nix"
	if b.hostOS == "windows" {
		proto = "file:///"
		hostOS = "windows"
	}
	out.Fields["base_url"] = proto + b.uploadsDir
	out.Fields["dwd_dir"] = proto + b.downloadsDir
	out.Fields["host_os"] = hostOS

	ts, err := b.recent.Timestamp(ctx, scanHash)
	if err != nil {
		return err
	}
	out.Fields["timestamp"] = ts
	return nil
}

func (b *Builder) generationError(scanHash, msg string, err error) error {
	b.logger.Error("report generation failed", "hash", scanHash, "stage", msg, "error", err)
	return &ReportGenerationError{Message: msg, Cause: err.Error()}
}

// CanRenderPDF reports whether the optional PDF capability is wired in.
func (b *Builder) CanRenderPDF() bool { return b.pdf != nil }

// RenderHTML renders the context through the platform template.
func (b *Builder) RenderHTML(rc *Context) ([]byte, error) {
	if b.renderer == nil {
		return nil, &ReportGenerationError{Message: "cannot render report", Cause: "no renderer configured"}
	}
	html, err := b.renderer.Render(rc.Template, rc.Fields)
	if err != nil {
		b.logger.Error("report render failed", "template", rc.Template, "error", err)
		return nil, &ReportGenerationError{Message: "cannot render report", Cause: err.Error()}
	}
	return html, nil
}

// RenderPDF renders the context to HTML and converts it. Callers must check
// CanRenderPDF first; calling without the capability is an error, not a panic.
func (b *Builder) RenderPDF(ctx context.Context, rc *Context) ([]byte, error) {
	if b.pdf == nil {
		return nil, &ReportGenerationError{Message: "cannot generate PDF", Cause: "PDF tooling is not installed"}
	}
	html, err := b.RenderHTML(rc)
	if err != nil {
		return nil, err
	}
	pdf, err := b.pdf.FromHTML(ctx, html)
	if err != nil {
		b.logger.Error("PDF conversion failed", "template", rc.Template, "error", err)
		return nil, &ReportGenerationError{Message: "cannot generate PDF", Cause: err.Error()}
	}
	return pdf, nil
}

// ValidateCompare gates two-hash comparison requests. Checks run before any
// store access: same-hash first, then per-hash format.
func ValidateCompare(hash1, hash2 string) error {
	if hash1 == hash2 {
		return ErrSameHash
	}
	if !hashPattern.MatchString(hash1) || !hashPattern.MatchString(hash2) {
		return ErrInvalidHash
	}
	return nil
}

func isArchive(fileName string) bool {
	return strings.HasSuffix(strings.ToLower(fileName), archiveExt)
}
