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
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nuts-foundation/nuts-bankid/api"
	"github.com/nuts-foundation/nuts-bankid/logging"
	"github.com/nuts-foundation/nuts-bankid/pkg/services/relyingparty"
	"github.com/nuts-foundation/nuts-bankid/pkg/services/transaction"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:              "serve",
	Short:            "Start the BankID gateway",
	Long:             `Start the BankID gateway.`,
	PersistentPreRun: InitConfig,
	Run: func(cmd *cobra.Command, args []string) {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		client, err := relyingparty.NewClient(appConfig.RelyingPartyConfig())
		if err != nil {
			logrus.WithError(err).Panic("Could not set up the relying-party client")
		}

		service := transaction.NewService(client, transaction.NewMemoryStore(), transaction.LogAuditor{}, transaction.Config{
			AuthenticationRequirements: appConfig.AuthenticationRequirements,
			SigningRequirements:        appConfig.SigningRequirements,
		})

		wrapper := &api.Wrapper{
			Client:       service,
			RelyingParty: client,
			Domain:       appConfig.Domain,
		}

		router := echo.New()
		router.HideBanner = true
		router.Use(middleware.Recover())
		wrapper.RegisterRoutes(router)

		go func() {
			if err := router.Start(appConfig.Address()); err != nil && err != http.ErrServerClosed {
				logrus.WithError(err).Fatal("Could not start the http server")
			}
		}()

		<-stop
		logging.Log().Info("Shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := router.Shutdown(ctx); err != nil {
			logging.Log().WithError(err).Error("Could not shut down gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
