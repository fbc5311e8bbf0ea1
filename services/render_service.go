package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/compose"
	"kartvizit.link/pkg/encode"
	"kartvizit.link/pkg/layout"
	"kartvizit.link/pkg/prefs"
	"kartvizit.link/pkg/ratelimit"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RenderServiceError özel servis hataları
type RenderServiceError string

func (e RenderServiceError) Error() string { return string(e) }

const (
	ErrRenderUnsupported  RenderServiceError = "bu varyant için çıktı biçimi desteklenmiyor"
	ErrRenderInvalidInput RenderServiceError = "geçersiz render parametresi"
	ErrRenderFailed       RenderServiceError = "render başarısız"
)

// Sınırlayıcı özellik adları.
const (
	FeatureBackground = "background"
	FeatureNameTag    = "nametag"
)

var supportedFormats = map[layout.Variant][]encode.Format{
	layout.VariantStandard:   {encode.FormatPNG, encode.FormatPDF, encode.FormatHTML},
	layout.VariantQR:         {encode.FormatPNG, encode.FormatPDF, encode.FormatHTML},
	layout.VariantBackground: {encode.FormatPNG},
}

// Supported varyant ve biçim birlikte sunuluyor mu?
func Supported(variant layout.Variant, format encode.Format) bool {
	for _, f := range supportedFormats[variant] {
		if f == format {
			return true
		}
	}
	return false
}

// RenderRequest tek bir indirme/önizleme isteği.
type RenderRequest struct {
	CardID  uint
	UserID  uint
	Variant layout.Variant
	Format  encode.Format
	Mode    prefs.Mode
	Copies  int
}

// Overrides kayıtlı tercihlerin üzerine istekteki değerleri yazar.
// dst *prefs.NameTag, *prefs.QRTag veya *prefs.Background'dur.
type Overrides func(dst any) error

// RenderOptions servis ayarları.
type RenderOptions struct {
	LimitNameTags bool // isim etiketleri de sınırlayıcıya tabi mi?
}

// IRenderService render isteğini iki aşamada yürütür: Prepare tüm doğrulamayı ve hak
// ayırmayı yanıt başlıklarından önce yapar; RenderJob.Encode gövdeyi üretir.
type IRenderService interface {
	Prepare(ctx context.Context, req RenderRequest, overrides Overrides) (*RenderJob, error)
}

type RenderService struct {
	cards     ICardService
	prefs     *PreferenceService
	renderer  *compose.Renderer
	views     encode.Views
	limiter   *ratelimit.Limiter
	analytics IAnalyticsService
	opts      RenderOptions
}

func NewRenderServiceWithDB(db *gorm.DB, cards ICardService, renderer *compose.Renderer, views encode.Views,
	limiter *ratelimit.Limiter, analytics IAnalyticsService, opts RenderOptions) IRenderService {
	return &RenderService{
		cards:     cards,
		prefs:     newPreferenceService(db, cards),
		renderer:  renderer,
		views:     views,
		limiter:   limiter,
		analytics: analytics,
		opts:      opts,
	}
}

// RenderJob doğrulanmış, hakkı ayrılmış ve geometrisi çözülmüş bir render.
type RenderJob struct {
	Variant     layout.Variant
	Format      encode.Format
	Filename    string
	ContentType string

	svc         *RenderService
	cardID      uint
	content     compose.Content
	geometry    *layout.Geometry
	copies      int
	nameTag     prefs.NameTag
	qrTag       prefs.QRTag
	background  prefs.Background
	reservation *ratelimit.Reservation
}

// Inline PNG ve HTML tarayıcıda gösterilir, PDF indirilir.
func (j *RenderJob) Inline() bool {
	return j.Format != encode.FormatPDF
}

// ContentDisposition yanıt başlığı değeri.
func (j *RenderJob) ContentDisposition() string {
	return (&encode.Artifact{Filename: j.Filename}).ContentDisposition(j.Inline())
}

func contentFor(card *models.Card) compose.Content {
	d := card.Detail
	return compose.Content{
		Record: compose.Record{
			Name:    d.FullName(),
			Title:   d.Title,
			Company: d.Company,
			Phone:   d.PhoneNumber,
			Email:   d.Email,
			Website: d.Website,
			Address: d.Address,
		},
		ProfilePhoto: d.ProfilePhoto,
		CompanyLogo:  d.CompanyLogo,
		LinkKey:      card.Link.Key,
	}
}

func renderInvalid(err error) error {
	return fmt.Errorf("%w: %v", ErrRenderInvalidInput, err)
}

// filenameSuffix indirilen dosya adının son parçası.
func filenameSuffix(v layout.Variant) string {
	switch v {
	case layout.VariantQR:
		return "qr_nametag"
	case layout.VariantBackground:
		return "virtual_background"
	}
	return "nametag"
}

// Prepare kartı ve tercihleri yükler, istek değerlerini uygular, doğrular, geometriyi çözer
// ve gerekiyorsa sınırlayıcıdan hak ayırır. Dönen hatalar yanıt gövdesi yazılmadan
// önce raporlanır.
func (s *RenderService) Prepare(ctx context.Context, req RenderRequest, overrides Overrides) (*RenderJob, error) {
	if !Supported(req.Variant, req.Format) {
		return nil, fmt.Errorf("%w: %s.%s", ErrRenderUnsupported, req.Variant, req.Format)
	}

	card, err := s.cards.GetCardByID(ctx, req.CardID, req.UserID)
	if err != nil {
		return nil, err
	}

	job := &RenderJob{
		Variant:     req.Variant,
		Format:      req.Format,
		ContentType: req.Format.ContentType(),
		Filename:    encode.Filename(string(req.Format), card.Detail.FullName(), card.Detail.Company, filenameSuffix(req.Variant)),
		svc:         s,
		cardID:      card.ID,
		content:     contentFor(card),
	}

	var (
		page   layout.PageSpec
		params layout.Params
	)
	switch req.Variant {
	case layout.VariantStandard:
		if job.nameTag, err = s.prefs.storedNameTag(ctx, card.ID); err != nil {
			return nil, err
		}
		if err := applyOverrides(overrides, &job.nameTag); err != nil {
			return nil, err
		}
		if err := job.nameTag.Validate(); err != nil {
			return nil, renderInvalid(err)
		}
		page, params = layout.SingleTag, job.nameTag.LayoutParams()

	case layout.VariantQR:
		if job.qrTag, err = s.prefs.storedQRTag(ctx, card.ID); err != nil {
			return nil, err
		}
		if err := applyOverrides(overrides, &job.qrTag); err != nil {
			return nil, err
		}
		validate := func() error { return job.qrTag.Validate(req.Mode) }
		if req.Format == encode.FormatPDF {
			validate = job.qrTag.ValidateSheet
		}
		if err := validate(); err != nil {
			return nil, renderInvalid(err)
		}
		page, params = job.qrTag.SinglePage(), job.qrTag.LayoutParams()

	case layout.VariantBackground:
		if job.background, err = s.prefs.storedBackground(ctx, card.ID); err != nil {
			return nil, err
		}
		if err := applyOverrides(overrides, &job.background); err != nil {
			return nil, err
		}
		if err := job.background.Validate(); err != nil {
			return nil, renderInvalid(err)
		}
		page, params = job.background.Page(), job.background.LayoutParams()
	}

	if req.Format == encode.FormatPDF {
		page = layout.LetterSheet
		if job.copies, err = encode.CheckCopies(req.Copies); err != nil {
			return nil, renderInvalid(err)
		}
	}

	if job.geometry, err = layout.Resolve(req.Variant, page, params); err != nil {
		return nil, renderInvalid(err)
	}

	if feature, limited := s.feature(req.Variant); limited && s.limiter != nil {
		reservation, err := s.limiter.Reserve(ctx, req.UserID, feature)
		if err != nil {
			if errors.Is(err, ratelimit.ErrRateLimited) {
				configslog.Log.Info("Render sınırı aşıldı", zap.Uint("user_id", req.UserID), zap.String("feature", feature))
				return nil, err
			}
			configslog.Log.Error("Sınırlayıcı hatası", zap.Uint("user_id", req.UserID), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
		}
		job.reservation = reservation
	}
	return job, nil
}

func applyOverrides(overrides Overrides, dst any) error {
	if overrides == nil {
		return nil
	}
	if err := overrides(dst); err != nil {
		return renderInvalid(err)
	}
	return nil
}

// feature varyantın sınırlayıcı anahtarını ve sınırlanıp sınırlanmadığını döndürür.
func (s *RenderService) feature(v layout.Variant) (string, bool) {
	if v == layout.VariantBackground {
		return FeatureBackground, true
	}
	return FeatureNameTag, s.opts.LimitNameTags
}

// Release ayrılmış hakkı iade eder. Encode başarısız olduğunda kendiliğinden çağrılır.
func (j *RenderJob) Release(ctx context.Context) {
	if err := j.reservation.Release(ctx); err != nil {
		configslog.Log.Warn("Sınırlayıcı hakkı iade edilemedi", zap.Uint("card_id", j.cardID), zap.Error(err))
	}
}

// Encode tuvali çizer, biçime göre kodlar ve w'ye yazar. Başarıda indirme olayı kaydedilir.
func (j *RenderJob) Encode(ctx context.Context, w io.Writer) error {
	artifact, err := j.artifact(ctx)
	if err != nil {
		j.Release(ctx)
		configslog.Log.Error("Render başarısız", zap.Uint("card_id", j.cardID), zap.String("variant", string(j.Variant)), zap.String("format", string(j.Format)), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	if _, err := w.Write(artifact.Body); err != nil {
		return err
	}
	if j.svc.analytics != nil {
		j.svc.analytics.Record(ctx, j.cardID, models.CardEventDownload, string(j.Variant)+"."+string(j.Format))
	}
	return nil
}

func (j *RenderJob) artifact(ctx context.Context) (*encode.Artifact, error) {
	r := j.svc.renderer
	switch j.Variant {
	case layout.VariantStandard:
		if j.Format == encode.FormatHTML {
			return j.standardFragment(ctx)
		}
		canvas, err := r.RenderStandard(ctx, j.geometry, j.content, j.nameTag.Style())
		if err != nil {
			return nil, err
		}
		return j.encodeCanvas(canvas)

	case layout.VariantQR:
		if j.Format == encode.FormatHTML {
			return j.qrFragment(ctx)
		}
		canvas, err := r.RenderQRTag(ctx, j.geometry, j.content, j.qrTag.Style())
		if err != nil {
			return nil, err
		}
		return j.encodeCanvas(canvas)

	case layout.VariantBackground:
		canvas, err := r.RenderBackground(ctx, j.geometry, j.content, j.background.Style())
		if err != nil {
			return nil, err
		}
		return j.encodeCanvas(canvas)
	}
	return nil, fmt.Errorf("%w: %s", ErrRenderUnsupported, j.Variant)
}

func (j *RenderJob) encodeCanvas(canvas *compose.Canvas) (*encode.Artifact, error) {
	if j.Format == encode.FormatPDF {
		return encode.EncodeSheetPDF(canvas, j.copies, j.Filename)
	}
	return encode.EncodePNG(canvas.Page(), j.Filename)
}

func pixels(pt float64, geo *layout.Geometry) int {
	return int(math.Round(pt * geo.Page.Scale()))
}

func (j *RenderJob) standardFragment(ctx context.Context) (*encode.Artifact, error) {
	cell := j.geometry.Cells[0]
	p := j.nameTag
	style := p.Style()

	data := encode.StandardFragment{
		Width:      cell.Bounds.W,
		Height:     cell.Bounds.H,
		Padding:    layout.CellPadding,
		Background: p.BackgroundColor,
		FontFamily: encode.CSSFontFamily(p.FontFamily),
		FontSize:   p.FontSize,
		LineHeight: compose.LineHeight(p.FontSize, p.LineSpacing),
		TextColor:  p.TextColor,
		Lines:      compose.TextLines(j.content.Record, style.Text.Include),
	}
	if region := cell.Standard.Image; !region.Empty() {
		data.ImageSize = math.Min(region.W, region.H)
		data.ImagePx = pixels(data.ImageSize, j.geometry)
		if img := j.svc.renderer.Image(ctx, j.content, style.Image, data.ImagePx, data.ImagePx); img != nil {
			uri, err := encode.DataURI(img)
			if err != nil {
				return nil, err
			}
			data.Image = uri
		}
	}
	return encode.EncodeFragment(j.svc.views, "standard", data, j.Filename)
}

func (j *RenderJob) qrFragment(ctx context.Context) (*encode.Artifact, error) {
	cell := j.geometry.Cells[0]
	regions := cell.QR
	p := j.qrTag

	px := pixels(regions.QR.W, j.geometry)
	uri, err := encode.DataURI(j.svc.renderer.QRImage(ctx, j.content.LinkKey, compose.SourceNameTag, px))
	if err != nil {
		return nil, err
	}

	data := encode.QRFragment{
		Width:        cell.Bounds.W,
		Height:       cell.Bounds.H,
		FontFamily:   encode.CSSFontFamily(p.FontFamily),
		FontSize:     p.BannerFontSize,
		TextColor:    p.BannerTextColor,
		TopText:      p.TopBannerText,
		TopColor:     p.TopBannerColor,
		TopHeight:    regions.TopBanner.H,
		BottomText:   p.BottomBannerText,
		BottomColor:  p.BottomBannerColor,
		BottomHeight: regions.BottomBanner.H,
		BandHeight:   cell.Bounds.H - regions.TopBanner.H - regions.BottomBanner.H,
		QR:           uri,
		QRSize:       regions.QR.W,
		QRPx:         px,
	}
	return encode.EncodeFragment(j.svc.views, "qr", data, j.Filename)
}

var _ IRenderService = (*RenderService)(nil)
