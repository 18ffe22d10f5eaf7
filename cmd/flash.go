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

	"eplflash/oepl"
)

var tmpAllowUnverified = false

var flashCmd = &cobra.Command{
	Use:   "flash <firmware.bin>",
	Short: "Flash a firmware image to the display (experimental)",
	Long: "Uploads a firmware image over BLE. The image's CRC trailer is\n" +
		"verified before anything is sent; a display bricked by a bad image\n" +
		"can only be recovered over SWD.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fw, err := oepl.ParseFirmware(args[0])
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(fw.String())

		if !fw.HasTrailer {
			if !tmpAllowUnverified {
				log.Fatal("firmware image has no CRC trailer; pass --force to flash it anyway")
			}
			log.Warn("flashing unverified firmware image")
		}

		display, engine := ConnectDisplay()
		defer display.Close()

		if err := engine.Upload(context.Background(), fw.Data, oepl.DATA_TYPE_FIRMWARE); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Firmware accepted, the display will reboot into the new image")
	},
}

func init() {
	rootCmd.AddCommand(flashCmd)
	flashCmd.Flags().BoolVar(&tmpAllowUnverified, "force", false, "flash even when the image carries no CRC trailer")
}
