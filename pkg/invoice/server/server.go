// Package server serves the invoice form over HTTP on the local machine.
//
// Routes:
//
//	GET  /                 the invoice form, date prefilled
//	GET  /api/words        amount in words preview, ?amount=1500
//	POST /api/invoices     generate an invoice and download the PDF
//
// Invoices are generated one at a time.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/benjaminschreck/go-invoice/pkg/invoice"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

//go:embed templates/form.html
var templateFS embed.FS

// Generator produces an invoice PDF at outPath
type Generator interface {
	Generate(ctx context.Context, fields invoice.Fields, outPath string) (*invoice.Result, error)
	Config() *invoice.Config
}

// Server handles the invoice form
type Server struct {
	generator Generator
	validate  *validator.Validate
	logger    *invoice.Logger
	now       func() time.Time
	router    *gin.Engine

	// mu serialises invoice generation
	mu sync.Mutex
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the logger for requests and failures
func WithLogger(l *invoice.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithClock sets the time source of the prefilled date
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New builds the server and its routes
func New(generator Generator, opts ...Option) *Server {
	s := &Server{
		generator: generator,
		validate:  newValidator(),
		logger:    invoice.GetLogger(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.logRequest())
	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/form.html")))

	router.GET("/", s.form)
	api := router.Group("/api")
	api.GET("/words", s.words)
	api.POST("/invoices", s.createInvoice)

	s.router = router
	return s
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("Invoice form listening on http://%s", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.WithFields(invoice.LogFields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).Round(time.Millisecond),
		}).Debug("Handled request")
	}
}

type formPage struct {
	Date          string
	CurrencyLabel string
	PaymentModes  []invoice.PaymentMode
}

func (s *Server) form(c *gin.Context) {
	config := s.generator.Config()
	c.HTML(http.StatusOK, "form.html", formPage{
		Date:          invoice.DefaultDate(s.now(), config.DateLayout),
		CurrencyLabel: config.CurrencyLabel,
		PaymentModes:  invoice.PaymentModes,
	})
}

// WordsResponse is the amount in words preview
type WordsResponse struct {
	Amount string `json:"amount"`
	Words  string `json:"words"`
	Valid  bool   `json:"valid"`
}

// words mirrors the live preview of the form: invalid input is not an error,
// it just yields the bare currency label.
func (s *Server) words(c *gin.Context) {
	raw := c.Query("amount")
	_, err := invoice.ParseAmount(raw)
	c.JSON(http.StatusOK, NewSuccessResponse(WordsResponse{
		Amount: raw,
		Words:  invoice.WordsField(raw, s.generator.Config().CurrencyLabel),
		Valid:  err == nil,
	}))
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// attachmentName derives the download file name from the reference number
func attachmentName(reference string) string {
	name := strings.Trim(unsafeFileChars.ReplaceAllString(reference, "_"), "._")
	if name == "" {
		return "invoice.pdf"
	}
	return "invoice-" + name + ".pdf"
}

func (s *Server) createInvoice(c *gin.Context) {
	var req InvoiceRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(ErrcodeInvalidRequest, nil, err.Error()))
		return
	}
	req.normalize()
	if msgs := s.validateRequest(req); len(msgs) > 0 {
		c.JSON(http.StatusBadRequest, NewResponse(ErrorStatus, nil, msgs))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir, err := os.MkdirTemp("", "invoice-serve-")
	if err != nil {
		s.fail(c, err)
		return
	}
	defer os.RemoveAll(dir)

	outPath := filepath.Join(dir, "invoice.pdf")
	result, err := s.generator.Generate(c.Request.Context(), req.Fields(), outPath)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.Header("X-Invoice-ID", result.ID)
	if !result.Report.Converged {
		c.Header("X-Invoice-Remaining-Tokens", strings.Join(result.Report.Remaining, " "))
	}
	c.FileAttachment(result.Path, attachmentName(req.Reference))
}

// fail maps a generation error to a status code
func (s *Server) fail(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, ErrcodeInternal
	switch {
	case invoice.IsMissingTemplate(err):
		status, code = http.StatusNotFound, ErrcodeTemplateMissing
	case invoice.IsConversionError(err):
		status, code = http.StatusBadGateway, ErrcodeConversion
	}
	s.logger.Error("Invoice generation failed: %v", err)
	c.JSON(status, NewErrorResponse(code, nil, err.Error()))
}
