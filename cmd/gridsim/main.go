package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/gridsim/internal/characteristic"
	"github.com/san-kum/gridsim/internal/config"
	"github.com/san-kum/gridsim/internal/control"
	"github.com/san-kum/gridsim/internal/network"
	"github.com/san-kum/gridsim/internal/plog"
	"github.com/san-kum/gridsim/internal/record"
	"github.com/san-kum/gridsim/internal/viz"
)

var (
	configFile string
	verbose    bool
	plotFrom   float64
	plotTo     float64
	plotNum    int
	plotOut    string
	ctrlType   string
	dbPath     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridsim",
		Short: "power network controller and characteristic toolkit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "net.yaml", "network definition file (yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	diagnoseCmd := &cobra.Command{
		Use:   "diagnose",
		Short: "check trafo characteristics for missing or invalid entries",
		RunE:  runDiagnose,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [characteristic_id]",
		Short: "plot a registered characteristic",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().Float64Var(&plotFrom, "from", -2, "sample range start")
	plotCmd.Flags().Float64Var(&plotTo, "to", 2, "sample range end")
	plotCmd.Flags().IntVar(&plotNum, "num", 20, "number of samples")
	plotCmd.Flags().StringVar(&plotOut, "out", "", "write to an image file instead of the terminal")

	tablesCmd := &cobra.Command{
		Use:   "tables",
		Short: "print the net tables",
		RunE:  runTables,
	}

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "interactively browse the net tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := loadNet()
			if err != nil {
				return err
			}
			return viz.Browse(net)
		},
	}

	controllersCmd := &cobra.Command{
		Use:   "controllers",
		Short: "list controllers, optionally filtered by type name",
		RunE:  runControllers,
	}
	controllersCmd.Flags().StringVar(&ctrlType, "type", "", "type name filter")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "dump the net tables into a sqlite database",
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&dbPath, "db", "net.sqlite3", "database file")

	rootCmd.AddCommand(diagnoseCmd, plotCmd, tablesCmd, browseCmd, controllersCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadNet() (*network.Net, error) {
	if verbose {
		control.SetLogger(plog.New(plog.LevelDebug, os.Stderr))
		characteristic.SetLogger(plog.New(plog.LevelDebug, os.Stderr))
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	return cfg.Build()
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	net, err := loadNet()
	if err != nil {
		return err
	}
	control.TrafoCharacteristicsDiagnostic(net)
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	net, err := loadNet()
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("characteristic id must be an integer: %w", err)
	}
	obj, ok := net.Characteristic().At(id, "object")
	if !ok || obj == nil {
		return fmt.Errorf("no characteristic with id %d", id)
	}
	c, ok := obj.(characteristic.Characteristic)
	if !ok {
		return fmt.Errorf("registry entry %d is not a characteristic", id)
	}

	caption := fmt.Sprintf("characteristic %d", id)
	if plotOut != "" {
		return characteristic.SavePNG(c, plotFrom, plotTo, plotNum, "tap position", "value", plotOut)
	}
	characteristic.Plot(os.Stdout, c, plotFrom, plotTo, plotNum, caption)
	return nil
}

func runTables(cmd *cobra.Command, args []string) error {
	net, err := loadNet()
	if err != nil {
		return err
	}
	for _, name := range net.TableNames() {
		tab, ok := net.Table(name)
		if !ok {
			continue
		}
		fmt.Println(viz.RenderTable(tab, 30))
	}
	return nil
}

func runControllers(cmd *cobra.Command, args []string) error {
	net, err := loadNet()
	if err != nil {
		return err
	}
	idx := control.FindControllers(net, control.Query{
		Type: control.TypeSelector{Name: ctrlType},
	})
	for _, i := range idx {
		c, ok := net.Controller().At(i, "object")
		if !ok {
			continue
		}
		fmt.Printf("%d: %v\n", i, c)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	net, err := loadNet()
	if err != nil {
		return err
	}
	r, err := record.Open(dbPath)
	if err != nil {
		return err
	}
	defer r.Close()
	if err := r.SaveNet(net); err != nil {
		return err
	}
	n, err := r.CellCount()
	if err != nil {
		return err
	}
	fmt.Printf("exported %d cells to %s\n", n, dbPath)
	return nil
}
