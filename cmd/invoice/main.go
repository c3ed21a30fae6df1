package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benjaminschreck/go-invoice/pkg/invoice"
	"github.com/benjaminschreck/go-invoice/pkg/invoice/server"
	"github.com/joho/godotenv"
)

const version = "0.1.0"

// Replaced in tests
var (
	timeNow   = time.Now
	newEngine = func(config *invoice.Config, template string) *invoice.Engine {
		return invoice.NewWithOptions(invoice.WithConfig(config), invoice.WithTemplate(template))
	}
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: invoice <command> [arguments]")
	fmt.Fprintln(w, "\nCommands:")
	fmt.Fprintln(w, "  create [flags]     Fill the template and save the invoice as PDF")
	fmt.Fprintln(w, "  words <amount>     Print the amount in words")
	fmt.Fprintln(w, "  serve [-addr]      Serve the invoice form on the local machine")
	fmt.Fprintln(w, "  version            Show version information")
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 1
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Error: failed to load .env: %v\n", err)
		return 1
	}
	invoice.SetGlobalConfig(invoice.ConfigFromEnvironment())
	config := invoice.GetGlobalConfig()

	var err error
	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "invoice version %s\n", version)
		return 0
	case "words":
		err = wordsCommand(config, args[1:], stdout)
	case "create":
		err = createCommand(config, args[1:], stdin, stdout, stderr)
	case "serve":
		err = serveCommand(config, args[1:], stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		usage(stderr)
		return 1
	}

	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func wordsCommand(config *invoice.Config, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: invoice words <amount>")
	}
	if _, err := invoice.ParseAmount(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(stdout, invoice.WordsField(args[0], config.CurrencyLabel))
	return nil
}

func createCommand(config *invoice.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fields := invoice.Fields{}
	var template, mode, out string
	var open bool

	flags := flag.NewFlagSet("create", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&template, "template", config.TemplatePath, "DOCX template with the placeholder tokens")
	flags.StringVar(&fields.Date, "date", invoice.DefaultDate(timeNow(), config.DateLayout), "invoice date")
	flags.StringVar(&fields.Reference, "ref", "", "reference number")
	flags.StringVar(&fields.Name, "name", "", "payer name")
	flags.StringVar(&fields.Amount, "amount", "", "amount in rupees, e.g. 1500.50")
	flags.StringVar(&mode, "mode", string(invoice.PaymentNEFT), "payment mode: NEFT, RTGS or CHEQUE")
	flags.StringVar(&fields.AmountWords, "words", "", "amount in words (derived from -amount when empty)")
	flags.StringVar(&out, "out", "", "PDF file to write (asked for when empty)")
	flags.BoolVar(&open, "open", false, "open the PDF once written")
	if err := flags.Parse(args); err != nil {
		return err
	}

	pm, err := invoice.ParsePaymentMode(mode)
	if err != nil {
		return err
	}
	fields.PaymentMode = pm

	engine := newEngine(config, template)
	if err := engine.Config().Validate(); err != nil {
		return err
	}
	invoice.RegisterFontOnce(invoice.UserFontRegistrar{}, config.FontPath)

	// Fail before asking for a destination
	if _, err := os.Stat(template); err != nil {
		return invoice.NewTemplateError(template, err)
	}

	if out == "" {
		fmt.Fprint(stdout, "Save PDF as: ")
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		out = strings.TrimSpace(line)
	}

	result, err := engine.Generate(context.Background(), fields, out)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	fmt.Fprintf(stdout, "Invoice saved to %s\n", result.Path)
	if !result.Report.Converged {
		fmt.Fprintf(stderr, "Warning: tokens left in the document: %s\n", strings.Join(result.Report.Remaining, ", "))
	}
	if open {
		if err := engine.Open(result); err != nil {
			fmt.Fprintf(stderr, "Warning: %v\n", err)
		}
	}
	return nil
}

func serveCommand(config *invoice.Config, args []string, stderr io.Writer) error {
	var addr, template string
	flags := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&addr, "addr", config.ListenAddr, "listen address")
	flags.StringVar(&template, "template", config.TemplatePath, "DOCX template with the placeholder tokens")
	if err := flags.Parse(args); err != nil {
		return err
	}
	engine := newEngine(config, template)
	if err := engine.Config().Validate(); err != nil {
		return err
	}
	invoice.RegisterFontOnce(invoice.UserFontRegistrar{}, config.FontPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(engine).ListenAndServe(ctx, addr)
}
