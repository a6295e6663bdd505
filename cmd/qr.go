/*
 * Nuts bankid
 * Copyright (C) 2020. Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/mdp/qrterminal/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nuts-foundation/nuts-bankid/pkg/services/transaction"
)

var qrStartToken string
var qrStartSecret string
var qrSeconds int

// qrCmd renders the animated QR sequence of an order in the terminal. It is
// a development aid: start an order against the test environment with curl,
// then point this command at the returned start token and secret.
var qrCmd = &cobra.Command{
	Use:   "qr",
	Short: "Render the animated QR code of a started order",
	Run: func(cmd *cobra.Command, args []string) {
		for elapsed := 0; elapsed < qrSeconds; elapsed++ {
			payload, err := transaction.QRData(qrStartToken, qrStartSecret, int64(elapsed))
			if err != nil {
				logrus.WithError(err).Fatal("Could not generate QR payload")
			}

			fmt.Printf("\n%s\n\n", payload)
			qrterminal.GenerateHalfBlock(payload, qrterminal.L, os.Stdout)
			time.Sleep(time.Second)
		}
	},
}

func init() {
	rootCmd.AddCommand(qrCmd)
	qrCmd.Flags().StringVar(&qrStartToken, "token", "", "qrStartToken of the started order")
	qrCmd.Flags().StringVar(&qrStartSecret, "secret", "", "qrStartSecret of the started order")
	qrCmd.Flags().IntVar(&qrSeconds, "seconds", 30, "how long to keep rendering codes")
}
