package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"pizzeria-manager/models"
	"pizzeria-manager/repository"
	"pizzeria-manager/utils"
)

//go:embed templates/receipt.html
var templateFS embed.FS

var receiptTemplate = template.Must(template.New("receipt.html").Funcs(template.FuncMap{
	"eur":         utils.FormatEUR,
	"statusLabel": utils.MapOrderStatusToLabel,
	"typeLabel":   utils.MapOrderTypeToLabel,
	"halfLabel":   utils.MapHalfToLabel,
}).ParseFS(templateFS, "templates/receipt.html"))

// ReceiptService renders order tickets as HTML and prints them to PDF
type ReceiptService struct {
	orderRepo        repository.OrderRepositoryInterface
	settingsRepo     repository.SettingsRepositoryInterface
	branding         *BrandingService
	driveService     DriveServiceInterface // nil when Drive is not configured
	receiptsFolderID string
	baseURL          string // Base URL the PDF printer loads the HTML ticket from
	location         *time.Location
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(
	orderRepo repository.OrderRepositoryInterface,
	settingsRepo repository.SettingsRepositoryInterface,
	branding *BrandingService,
	driveService DriveServiceInterface,
	receiptsFolderID string,
	baseURL string,
	location *time.Location,
) *ReceiptService {
	if location == nil {
		location = time.UTC
	}
	return &ReceiptService{
		orderRepo:        orderRepo,
		settingsRepo:     settingsRepo,
		branding:         branding,
		driveService:     driveService,
		receiptsFolderID: receiptsFolderID,
		baseURL:          baseURL,
		location:         location,
	}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

type receiptData struct {
	Order     *models.Order
	Logo      template.URL
	CreatedAt string
	Slot      string
}

func newReceiptData(order *models.Order, logo template.URL, location *time.Location) receiptData {
	data := receiptData{
		Order:     order,
		Logo:      logo,
		CreatedAt: order.CreatedAt.In(location).Format("02/01/2006 15:04"),
	}
	if order.SlotTime != nil {
		data.Slot = order.SlotTime.In(location).Format("15:04")
	}
	return data
}

// RenderReceiptHTML renders the ticket of a committed order from its stored amounts
func (s *ReceiptService) RenderReceiptHTML(ctx context.Context, organizationID, orderID uuid.UUID) (string, error) {
	order, err := s.orderRepo.GetByID(ctx, organizationID, orderID)
	if err != nil {
		return "", err
	}

	location := s.location
	if s.settingsRepo != nil {
		if rules, err := s.settingsRepo.GetBusinessRules(ctx, organizationID); err == nil {
			location = resolveLocation(rules.Timezone, s.location)
		} else {
			log.Printf("⚠️  RenderReceiptHTML: using default time zone: %v", err)
		}
	}

	var logo template.URL
	if s.branding != nil {
		logo = s.branding.LogoDataURI(ctx)
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, newReceiptData(order, logo, location)); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF prints the HTML ticket of an order to an 80mm-wide PDF using chromedp.
// With archive set and Drive configured, the PDF is also uploaded to the receipts folder;
// an upload failure is logged and does not fail the print.
func (s *ReceiptService) GeneratePDF(ctx context.Context, organizationID, orderID uuid.UUID, archive bool) ([]byte, error) {
	// Fail fast with ErrOrderNotFound before starting a browser
	order, err := s.orderRepo.GetByID(ctx, organizationID, orderID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/admin/orders/%s/receipt?format=html&organizationId=%s", s.baseURL, orderID, organizationID)

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(302, 1200), // 80mm at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// 80mm = 3.15"; height grows with the ticket, CSS @page keeps it on one roll segment
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(3.15).
				WithPaperHeight(11.7).
				WithPreferCSSPageSize(true).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✅ GeneratePDF: order=%s number=%d size=%d bytes", order.ID, order.OrderNumber, len(pdfBuf))

	if archive {
		s.archive(ctx, order, pdfBuf)
	}
	return pdfBuf, nil
}

func (s *ReceiptService) archive(ctx context.Context, order *models.Order, pdf []byte) {
	if s.driveService == nil || s.receiptsFolderID == "" {
		log.Printf("⚠️  archive: Drive not configured, receipt for order=%s not archived", order.ID)
		return
	}

	name := receiptFileName(order, s.location)
	if _, err := s.driveService.UploadFile(ctx, s.receiptsFolderID, name, "application/pdf", pdf); err != nil {
		log.Printf("❌ archive: Error uploading receipt %s: %v", name, err)
	}
}

// receiptFileName is "ordine_2026-10-19_007_<id>.pdf"
func receiptFileName(order *models.Order, location *time.Location) string {
	return fmt.Sprintf("ordine_%s_%03d_%s.pdf", order.CreatedAt.In(location).Format("2006-01-02"), order.OrderNumber, order.ID)
}
