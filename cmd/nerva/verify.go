package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nervasim/nerva/config"
	"github.com/nervasim/nerva/kernel"
	"github.com/nervasim/nerva/vp"
)

var (
	verifyExperimentFile string
	verifyDraws          int
	verifyUnitCounts     = []int{1, 2, 4}
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that draw sequences are identical under 1, 2, and 4 units",
	Long: `Verify replays the configured run under 1, 2, and 4 physical units ` +
		`and checks that the values drawn from every virtual process are ` +
		`bit-identical across the three layouts.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(verifyExperimentFile)
		if err != nil {
			return err
		}

		return verifyRescaling(cfg)
	},
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyExperimentFile, "experiment", "e", "",
		"yaml experiment file")
	verifyCmd.Flags().IntVarP(&verifyDraws, "draws", "d", 10,
		"number of draws to compare per virtual process")
	rootCmd.AddCommand(verifyCmd)
}

func verifyRescaling(cfg config.Run) error {
	var reference [][]float64

	for _, numUnits := range verifyUnitCounts {
		draws, err := drawsUnderLayout(cfg, numUnits)
		if err != nil {
			return err
		}

		if reference == nil {
			reference = draws
			continue
		}

		for vpID := range draws {
			for n := range draws[vpID] {
				if draws[vpID][n] != reference[vpID][n] {
					return fmt.Errorf(
						"draw %d of VP %d differs under %d units: %v != %v",
						n+1, vpID, numUnits,
						draws[vpID][n], reference[vpID][n])
				}
			}
		}
	}

	fmt.Printf("PASS: %d draws per VP identical under %v units "+
		"(totalVPs %d, seed %d)\n",
		verifyDraws, verifyUnitCounts, cfg.TotalVPs, cfg.RunSeed)

	return nil
}

// drawsUnderLayout configures a fresh kernel over numUnits single-thread
// ranks and collects the first verifyDraws values of every VP, drawn from the
// unit that owns it.
func drawsUnderLayout(cfg config.Run, numUnits int) ([][]float64, error) {
	layout, err := vp.MakeLayout(numUnits, 1)
	if err != nil {
		return nil, err
	}

	k := kernel.New(layout)
	if err := k.Configure(kernel.Config{
		TotalVPs: cfg.TotalVPs,
		RunSeed:  cfg.RunSeed,
	}); err != nil {
		return nil, err
	}

	for i := 0; i < cfg.Elements; i++ {
		k.CreateElement()
	}

	partition := k.Partition()
	draws := make([][]float64, cfg.TotalVPs)

	for vpID := 0; vpID < cfg.TotalVPs; vpID++ {
		owner := layout.UnitAt(partition.OwnerOf(vpID))
		stream := k.LocalStream(vpID, owner)

		for n := 0; n < verifyDraws; n++ {
			draws[vpID] = append(draws[vpID], stream.Float64())
		}
	}

	return draws, nil
}
