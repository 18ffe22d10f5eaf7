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
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var tmpClockMode = byte(0)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change individual display settings",
}

var setDisplayTypeCmd = &cobra.Command{
	Use:   "displaytype <id>",
	Short: "Select the panel driver by numeric display type",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseUint(args[0], 0, 16)
		if err != nil {
			log.Fatalf("bad display type '%s': %v", args[0], err)
		}

		display, engine := ConnectDisplay()
		defer display.Close()

		if err := engine.SetDisplayType(context.Background(), uint16(id)); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Display type set to %d\n", id)
	},
}

var setIntervalCmd = &cobra.Command{
	Use:   "interval <units>",
	Short: "Set the BLE advertising interval",
	Long: "Sets the advertising interval in units of 0.625ms. Longer intervals\n" +
		"stretch battery life but make the display slower to find.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		interval, err := strconv.ParseUint(args[0], 0, 16)
		if err != nil {
			log.Fatalf("bad interval '%s': %v", args[0], err)
		}

		display, engine := ConnectDisplay()
		defer display.Close()

		if err := engine.SetAdvInterval(context.Background(), uint16(interval)); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Advertising interval set to %d units\n", interval)
	},
}

var setMACCmd = &cobra.Command{
	Use:   "mac <16 hex digits>",
	Short: "Set a custom MAC address",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cleaned := strings.NewReplacer(":", "", "-", "").Replace(args[0])
		raw, err := hex.DecodeString(cleaned)
		if err != nil || len(raw) != 8 {
			log.Fatalf("bad MAC '%s': want 8 bytes as hex", args[0])
		}
		var mac [8]byte
		copy(mac[:], raw)

		display, engine := ConnectDisplay()
		defer display.Close()

		if err := engine.SetCustomMAC(context.Background(), mac); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Custom MAC set to % 02x\n", mac)
	},
}

var setClockCmd = &cobra.Command{
	Use:   "clock [epoch]",
	Short: "Turn the display into a clock face",
	Long: "Puts the display into clock mode, seeded with the given unix epoch\n" +
		"(defaults to the current time). Use 'set clock off' to leave clock mode.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		display, engine := ConnectDisplay()
		defer display.Close()

		if len(args) == 1 && args[0] == "off" {
			if err := engine.DisableClockMode(context.Background()); err != nil {
				log.Fatal(err)
			}
			fmt.Println("Clock mode disabled")
			return
		}

		epoch := uint32(time.Now().Unix())
		if len(args) == 1 {
			parsed, err := strconv.ParseUint(args[0], 0, 32)
			if err != nil {
				log.Fatalf("bad epoch '%s': %v", args[0], err)
			}
			epoch = uint32(parsed)
		}

		if err := engine.SetClockMode(context.Background(), epoch, tmpClockMode); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Clock mode enabled, epoch %d\n", epoch)
	},
}

var setOEPLCmd = &cobra.Command{
	Use:   "oepl on|off",
	Short: "Enable or disable OpenEPaperLink compatibility mode",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		display, engine := ConnectDisplay()
		defer display.Close()

		switch args[0] {
		case "on":
			if err := engine.EnableOEPL(context.Background()); err != nil {
				log.Fatal(err)
			}
			fmt.Println("OEPL mode enabled")
		case "off":
			if err := engine.DisableOEPL(context.Background()); err != nil {
				log.Fatal(err)
			}
			fmt.Println("OEPL mode disabled")
		default:
			log.Fatalf("want 'on' or 'off', got '%s'", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.AddCommand(setDisplayTypeCmd)
	setCmd.AddCommand(setIntervalCmd)
	setCmd.AddCommand(setMACCmd)
	setCmd.AddCommand(setClockCmd)
	setCmd.AddCommand(setOEPLCmd)
	setClockCmd.Flags().Uint8Var(&tmpClockMode, "style", 0, "clock face style")
}
