package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RogoSolutions/iotcore-demo/internal/pkg/devicecmd"
	"github.com/RogoSolutions/iotcore-demo/internal/pkg/dispatch"
	"github.com/RogoSolutions/iotcore-demo/internal/pkg/handlers"
	"github.com/RogoSolutions/iotcore-demo/internal/pkg/logging"
	"github.com/RogoSolutions/iotcore-demo/internal/pkg/rogoapi"
	"github.com/RogoSolutions/iotcore-demo/pkg/middlewares"
)

var _serverCmdOpts struct {
	httpPort        uint16
	gracefulTimeout time.Duration
	readTimeout     time.Duration
	writeTimeout    time.Duration
	backendTimeout  time.Duration
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the catalog and history inspection server",

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := doServer(); err != nil {
			return err
		}

		return nil
	},

	PreRunE: func(cmd *cobra.Command, args []string) error {
		return checkRequiredFlags("backend.url")
	},
}

func init() {
	serverCmd.Flags().Uint16Var(&_serverCmdOpts.httpPort, "http-port", 8088, "HTTP port number")
	serverCmd.Flags().DurationVar(&_serverCmdOpts.gracefulTimeout, "graceful-timeout", time.Second*15, "duration to wait for server to finish, eg. 1m or 10s")
	serverCmd.Flags().DurationVar(&_serverCmdOpts.readTimeout, "read-timeout", time.Second*15, "duration to wait for request read, eg. 1m or 10s")
	serverCmd.Flags().DurationVar(&_serverCmdOpts.writeTimeout, "write-timeout", time.Second*60, "duration to wait for request write, eg. 1m or 10s")
	serverCmd.Flags().DurationVar(&_serverCmdOpts.backendTimeout, "backend-timeout", time.Second*15, "maximum duration of a backend call, eg. 1m or 10s")

	errPanic(viper.GetViper().BindPFlag("http.port", serverCmd.Flags().Lookup("http-port")))
	errPanic(viper.GetViper().BindPFlag("http.graceful-timeout", serverCmd.Flags().Lookup("graceful-timeout")))
	errPanic(viper.GetViper().BindPFlag("http.read-timeout", serverCmd.Flags().Lookup("read-timeout")))
	errPanic(viper.GetViper().BindPFlag("http.write-timeout", serverCmd.Flags().Lookup("write-timeout")))
	errPanic(viper.GetViper().BindPFlag("backend.timeout", serverCmd.Flags().Lookup("backend-timeout")))

	rootCmd.AddCommand(serverCmd)
}

func doServer() error {
	wait := viper.GetDuration("http.graceful-timeout")
	port := viper.GetUint("http.port")
	backendURL := viper.GetString("backend.url")
	backendToken := viper.GetString("backend.token")
	backendTimeout := viper.GetDuration("backend.timeout")

	ledger := devicecmd.NewLedger()
	runner := dispatch.NewRunner(dispatch.NewSimulated(), ledger)
	backend := rogoapi.NewLiveClient(backendURL).
		WithAccessToken(backendToken).
		WithTimeout(backendTimeout)

	ch := handlers.NewCommandsHandler(runner, ledger)
	hh := handlers.NewHistoryHandler(ledger)
	bh := handlers.NewBackendHandler(backend)

	r := mux.NewRouter()
	r.Use(middlewares.NewCorsMw(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	}))
	r.Use(middlewares.NewCorrelationMw("X-Correlation-ID"))
	r.Use(middlewares.NewRecoveryMw())
	r.Use(middlewares.NewLoggingMw())
	r.HandleFunc("/v1/commands", ch.List).Methods(http.MethodGet)
	r.HandleFunc("/v1/commands/{id}", ch.Get).Methods(http.MethodGet)
	r.HandleFunc("/v1/commands/{id}/invoke", ch.Invoke).Methods(http.MethodPost)
	r.HandleFunc("/v1/history", hh.List).Methods(http.MethodGet)
	r.HandleFunc("/v1/history", hh.Clear).Methods(http.MethodDelete)
	r.HandleFunc("/v1/locations", bh.Locations).Methods(http.MethodGet)
	r.HandleFunc("/v1/groups", bh.Groups).Methods(http.MethodGet)

	s := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		ReadTimeout:  viper.GetDuration("http.read-timeout"),
		WriteTimeout: viper.GetDuration("http.write-timeout"),
		IdleTimeout:  time.Second * 60,
		Handler:      r,
	}

	logging.Logger(nil).Infof("Serving on port %d", port)
	go func() {
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger(nil).WithError(err).Error("running server")
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	// Block until we receive a signal
	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	logging.Logger(nil).Info("shutting down")
	if err := s.Shutdown(ctx); err != nil {
		logging.Logger(nil).WithError(err).Errorf("shutting down")
	}
	logging.Logger(nil).Info("exiting")
	return nil
}
