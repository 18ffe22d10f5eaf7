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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var sleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "Put the display into deep sleep",
	Long: "Puts the display into its lowest power state. It stops advertising\n" +
		"and only wakes on a button press or power cycle.",
	Run: func(cmd *cobra.Command, args []string) {
		display, engine := ConnectDisplay()
		defer display.Close()

		if err := engine.DeepSleep(context.Background()); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Display sent to deep sleep")
	},
}

var bleOffCmd = &cobra.Command{
	Use:   "bleoff",
	Short: "Shut down the display's BLE radio until the next wakeup",
	Run: func(cmd *cobra.Command, args []string) {
		display, engine := ConnectDisplay()
		defer display.Close()

		if err := engine.DisableBLE(context.Background()); err != nil {
			log.Fatal(err)
		}
		fmt.Println("BLE radio disabled")
	},
}

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Trigger the firmware's debug routine",
	Run: func(cmd *cobra.Command, args []string) {
		display, engine := ConnectDisplay()
		defer display.Close()

		if err := engine.Debug(context.Background()); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Debug routine triggered")
	},
}

func init() {
	rootCmd.AddCommand(sleepCmd)
	rootCmd.AddCommand(bleOffCmd)
	rootCmd.AddCommand(debugCmd)
}
