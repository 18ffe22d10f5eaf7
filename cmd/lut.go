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
)

var tmpLutOutPath = ""

var lutCmd = &cobra.Command{
	Use:   "lut",
	Short: "Read the active waveform LUT from the display",
	Run: func(cmd *cobra.Command, args []string) {
		display, engine := ConnectDisplay()
		defer display.Close()

		lut, err := engine.ReadLUT(context.Background())
		if err != nil {
			log.Fatal(err)
		}

		if len(tmpLutOutPath) > 0 {
			if err := os.WriteFile(tmpLutOutPath, lut, 0644); err != nil {
				log.Fatal(err)
			}
			fmt.Printf("Wrote %d LUT bytes to '%s'\n", len(lut), tmpLutOutPath)
			return
		}

		for pos := 0; pos < len(lut); pos += 16 {
			end := pos + 16
			if end > len(lut) {
				end = len(lut)
			}
			fmt.Printf("%#04x: % 02x\n", pos, lut[pos:end])
		}
	},
}

func init() {
	rootCmd.AddCommand(lutCmd)
	lutCmd.Flags().StringVarP(&tmpLutOutPath, "out", "o", "", "write the LUT to a file instead of hexdumping it")
}
