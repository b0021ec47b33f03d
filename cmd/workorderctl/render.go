package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	workorderapp "github.com/maintenance/backend/internal/application/workorder"
	domain "github.com/maintenance/backend/internal/domain/workorder"
	"github.com/maintenance/backend/internal/infrastructure/config"
	"github.com/maintenance/backend/internal/infrastructure/printing"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type renderCmd struct {
	root       *rootOptions
	input      string
	outputDir  string
	logoPath   string
	configPath string
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	rc := &renderCmd{root: root}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Validate a work order JSON file and write its PDF",
		Example: `  workorderctl render -i order.json -o out/
  cat order.json | workorderctl render -i - --logo logo.png`,
		RunE: rc.run,
	}

	cmd.Flags().StringVarP(&rc.input, "input", "i", "", "Work order JSON file, or - for stdin")
	cmd.Flags().StringVarP(&rc.outputDir, "output", "o", ".", "Directory the PDF is written to")
	cmd.Flags().StringVar(&rc.logoPath, "logo", "", "Logo image (PNG, JPEG or GIF) shown in the header")
	cmd.Flags().StringVarP(&rc.configPath, "config", "c", "", "config.toml with render settings (paper size, margins, timezone)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (rc *renderCmd) run(cmd *cobra.Command, _ []string) error {
	log := rc.root.logger()
	defer func() { _ = log.Sync() }()

	payload, err := rc.readPayload(cmd.InOrStdin())
	if err != nil {
		return err
	}

	renderer, err := rc.renderer(log)
	if err != nil {
		return err
	}

	svc := workorderapp.NewDocumentService(renderer, nil, log)
	doc, err := svc.Generate(cmd.Context(), payload)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			w := cmd.ErrOrStderr()
			for _, field := range verr.FieldNames() {
				for _, msg := range verr.Fields[field] {
					fmt.Fprintf(w, "%s: %s\n", field, msg)
				}
			}
			return fmt.Errorf("work order is invalid: %d field(s) rejected", len(verr.Fields))
		}
		return err
	}

	if err := os.MkdirAll(rc.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(rc.outputDir, doc.Filename)
	if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d page(s), %d bytes)\n", path, doc.PageCount, doc.Size())
	return nil
}

func (rc *renderCmd) readPayload(stdin io.Reader) (map[string]any, error) {
	var r io.Reader = stdin
	if rc.input != "-" {
		f, err := os.Open(rc.input)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("input is not a JSON object: %w", err)
	}
	return payload, nil
}

func (rc *renderCmd) renderer(log *zap.Logger) (*printing.LayoutRenderer, error) {
	var logo printing.LogoProvider = printing.NoLogo{}
	if rc.logoPath != "" {
		logo = printing.NewFileLogoProvider(rc.logoPath, log)
	}

	if rc.configPath == "" {
		return printing.NewLayoutRenderer(&printing.RendererConfig{Logo: logo, Logger: log})
	}

	cfg, err := config.LoadFile(rc.configPath)
	if err != nil {
		return nil, err
	}
	if rc.logoPath == "" {
		if logo, err = printing.NewLogoProvider(cfg, log); err != nil {
			return nil, err
		}
	}
	rendererCfg, err := printing.RendererConfigFrom(cfg.Render, logo, log)
	if err != nil {
		return nil, err
	}
	return printing.NewLayoutRenderer(rendererCfg)
}
