package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"aeroreduce/internal/airfoil"
	"aeroreduce/internal/config"
	api "aeroreduce/pkg/contracts/api/v1"
)

func newTemplateCommand(opts *rootOptions) *cobra.Command {
	var (
		out     string
		name    string
		alphas  []float64
		offsets []float64
	)
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an empty sweep request sized for the configured tunnel",
		Long: `Writes a sweep request with one zero-filled case per angle of attack. Array
lengths follow the configured tap stations and rake ports. The two rake
offsets come from --offset and must differ; the file then only needs the
measured values filled in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if len(alphas) == 0 {
				alphas = airfoil.DefaultAlphas()
			}
			if len(offsets) != 2 || offsets[0] == offsets[1] {
				return fmt.Errorf("--offset needs two distinct rake offsets, got %v", offsets)
			}
			req := sweepTemplate(cfg.Tunnel, name, alphas, offsets[0], offsets[1])

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(req)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	flags.StringVar(&name, "name", "sweep", "sweep name")
	flags.Float64SliceVar(&alphas, "alpha", nil, "angles of attack in degrees (default: reference sweep)")
	flags.Float64SliceVar(&offsets, "offset", []float64{0, defaultSecondOffset}, "rake offsets in metres for configurations 1 and 2")
	return cmd
}

// defaultSecondOffset is the traverse of the second rake configuration
const defaultSecondOffset = 0.005

func sweepTemplate(t config.TunnelConfig, name string, alphas []float64, offset1, offset2 float64) api.SweepRequest {
	req := api.SweepRequest{Name: name, Cases: make([]api.CaseRequest, len(alphas))}
	for i, alpha := range alphas {
		req.Cases[i] = api.CaseRequest{
			ID:    fmt.Sprintf("a%g", alpha),
			Alpha: alpha,
			Pressures: api.SurfacePressures{
				Top:    make([]api.Sample, len(t.TopTaps)),
				Bottom: make([]api.Sample, len(t.BottomTaps)),
			},
			Rake: api.RakePressures{
				Config1: make([]api.Sample, len(t.RakePortsCM)),
				Config2: make([]api.Sample, len(t.RakePortsCM)),
				Offset1: offset1,
				Offset2: offset2,
			},
		}
	}
	return req
}
