// Copyright © 2019 Marcus Mengs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"eplflash/oepl"
)

var tmpConfigOutPath = ""

// loadConfigBlob reads and validates a raw dynamic config blob, so a broken
// file is rejected before anything touches the device.
func loadConfigBlob(path string) *oepl.DynamicConfig {
	blob, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	cfg := &oepl.DynamicConfig{}
	if err := cfg.FromWire(blob); err != nil {
		log.Fatal(err)
	}
	return cfg
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read, test or persist the display's dynamic configuration",
}

var configReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Read the current dynamic configuration",
	Run: func(cmd *cobra.Command, args []string) {
		display, engine := ConnectDisplay()
		defer display.Close()

		cfg, err := engine.ReadDynamicConfig(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(cfg.String())

		if len(tmpConfigOutPath) > 0 {
			if err := os.WriteFile(tmpConfigOutPath, cfg.ToWire(), 0644); err != nil {
				log.Fatal(err)
			}
			fmt.Printf("Wrote config blob to '%s'\n", tmpConfigOutPath)
		}
	},
}

var configTestCmd = &cobra.Command{
	Use:   "test <config.bin>",
	Short: "Apply a configuration without persisting it",
	Long: "Applies a configuration blob for the current power cycle only. The\n" +
		"device falls back to its stored configuration on reset, so a bad\n" +
		"pinout can not lock you out.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfigBlob(args[0])
		fmt.Println(cfg.String())

		display, engine := ConnectDisplay()
		defer display.Close()

		if err := engine.TestDynamicConfig(context.Background(), cfg); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Configuration applied (not persisted)")
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save <config.bin>",
	Short: "Persist a configuration on the display",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfigBlob(args[0])
		fmt.Println(cfg.String())

		display, engine := ConnectDisplay()
		defer display.Close()

		if err := engine.SaveDynamicConfig(context.Background(), cfg); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Configuration saved")
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe the stored configuration",
	Run: func(cmd *cobra.Command, args []string) {
		display, engine := ConnectDisplay()
		defer display.Close()

		if err := engine.ResetConfig(context.Background()); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Configuration wiped")
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configReadCmd)
	configCmd.AddCommand(configTestCmd)
	configCmd.AddCommand(configSaveCmd)
	configCmd.AddCommand(configResetCmd)
	configReadCmd.Flags().StringVarP(&tmpConfigOutPath, "out", "o", "", "also write the raw config blob to a file")
}
