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

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show display geometry, battery level and health counters",
	Run: func(cmd *cobra.Command, args []string) {
		display, engine := ConnectDisplay()
		defer display.Close()

		ctx := context.Background()

		screen, err := engine.ReadScreenInfo(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(screen.String())

		status, err := engine.ReadDebugStatus(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(status.String())
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
