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
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"eplflash/ble"
	"eplflash/oepl"
)

var (
	tmpAddress        = ""
	tmpConnectTimeout = 30 * time.Second
	tmpRetries        = oepl.DefaultPartRetryLimit
	tmpVerbose        = false
	tmpSniff          = false
)

var rootCmd = &cobra.Command{
	Use:   "eplflash",
	Short: "Upload images and firmware to BLE e-paper displays",
	Long: "eplflash talks to e-paper displays running the ATC BLE firmware\n" +
		"over their GATT control characteristic: image and firmware upload,\n" +
		"display configuration, LUT readout and power management.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if tmpVerbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&tmpAddress, "address", "a", "", "BLE MAC address of the display (required)")
	rootCmd.PersistentFlags().DurationVarP(&tmpConnectTimeout, "timeout", "t", 30*time.Second, "how long to keep scanning for the display")
	rootCmd.PersistentFlags().IntVar(&tmpRetries, "retries", oepl.DefaultPartRetryLimit, "how often to resend a rejected block part")
	rootCmd.PersistentFlags().BoolVarP(&tmpVerbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&tmpSniff, "sniff", false, "log raw frames in both directions")
	rootCmd.MarkPersistentFlagRequired("address")
}

// ConnectDisplay connects to the display given on the command line and wraps
// it in a protocol engine. The caller owns the returned display and has to
// Close it.
func ConnectDisplay() (*ble.Display, *oepl.Engine) {
	ctx, cancel := context.WithTimeout(context.Background(), tmpConnectTimeout)
	defer cancel()

	display, err := ble.Connect(ctx, tmpAddress)
	if err != nil {
		log.Fatal(err)
	}
	display.SetSniff(tmpSniff)

	engine := oepl.NewEngine(display,
		oepl.WithPartRetryLimit(tmpRetries),
		oepl.WithLogger(log.StandardLogger()),
	)
	return display, engine
}
