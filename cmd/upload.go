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

var (
	tmpUploadType = "bwr"
	tmpCompress   = false
)

func dataTypeFromFlag(name string) (oepl.DataType, error) {
	switch name {
	case "bw":
		return oepl.DATA_TYPE_RAW_BW, nil
	case "bwr", "bwy":
		return oepl.DATA_TYPE_RAW_BWR_BWY, nil
	case "lut":
		return oepl.DATA_TYPE_CUSTOM_LUT, nil
	case "zlib":
		return oepl.DATA_TYPE_ZLIB, nil
	}
	return 0, fmt.Errorf("unknown upload type %q (want bw, bwr, bwy, lut or zlib)", name)
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a raw image to the display",
	Long: "Uploads a raw framebuffer blob to the display. The file has to be in\n" +
		"the panel's native plane layout; use --compress to deflate it on the\n" +
		"way over for large images.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		payload, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		dataType, err := dataTypeFromFlag(tmpUploadType)
		if err != nil {
			log.Fatal(err)
		}

		if tmpCompress {
			compressed, err := oepl.CompressPayload(payload)
			if err != nil {
				log.Fatal(err)
			}
			log.WithFields(log.Fields{"raw": len(payload), "compressed": len(compressed)}).Info("compressed payload")
			payload = compressed
			dataType = oepl.DATA_TYPE_ZLIB
		}

		display, engine := ConnectDisplay()
		defer display.Close()

		if err := engine.Upload(context.Background(), payload, dataType); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Uploaded %d bytes (%s) to %s\n", len(payload), dataType, tmpAddress)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVar(&tmpUploadType, "type", "bwr", "payload type: bw, bwr, bwy, lut or zlib")
	uploadCmd.Flags().BoolVarP(&tmpCompress, "compress", "c", false, "zlib compress the payload before upload")
}
