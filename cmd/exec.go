package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RogoSolutions/iotcore-demo/internal/pkg/devicecmd"
	"github.com/RogoSolutions/iotcore-demo/internal/pkg/dispatch"
	"github.com/RogoSolutions/iotcore-demo/internal/pkg/logging"
)

var _execCmdOpts struct {
	params    []string
	transport string
}

var execCmd = &cobra.Command{
	Use:   "exec <command-id>",
	Short: "Dispatch one device command and print the recorded result",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return doExec(args[0])
	},
}

func init() {
	execCmd.Flags().StringArrayVarP(&_execCmdOpts.params, "param", "p", nil, "parameter as name=value (repeatable)")
	execCmd.Flags().StringVar(&_execCmdOpts.transport, "transport", "cloud", "transport to record: ble or cloud")

	rootCmd.AddCommand(execCmd)
}

func doExec(commandID string) error {
	def, err := devicecmd.Lookup(commandID)
	if err != nil {
		return err
	}

	deviceID := viper.GetString("device.id")
	if def.RequiresDeviceID() && deviceID == "" {
		return errors.Errorf("command %q targets a device: set --device", commandID)
	}

	var transport devicecmd.Transport
	switch _execCmdOpts.transport {
	case "ble":
		transport = devicecmd.TransportBLE
	case "cloud":
		transport = devicecmd.TransportCloud
	default:
		return errors.Errorf("unknown transport %q (want ble or cloud)", _execCmdOpts.transport)
	}

	values := devicecmd.NewParameterValues()
	for _, kv := range _execCmdOpts.params {
		name, val, found := strings.Cut(kv, "=")
		if !found {
			return errors.Errorf("bad parameter %q (want name=value)", kv)
		}
		values.Set(name, val)
	}
	values.ApplyDefaults(def, deviceID)

	ledger := devicecmd.NewLedger()
	runner := dispatch.NewRunner(dispatch.NewSimulated(), ledger)

	ctx := logging.WithDeviceID(context.Background(), deviceID)
	recordID := runner.RunOne(ctx, dispatch.Invocation{
		Command:   def,
		Params:    values.Snapshot(),
		Transport: transport,
	})

	for _, rec := range ledger.All() {
		if rec.ID != recordID {
			continue
		}

		printRecord(rec)
		if !rec.Outcome.Success {
			return errors.Errorf("command failed: %s", rec.Outcome.Message)
		}
		return nil
	}

	return errors.New("dispatched record not found")
}

func printRecord(rec devicecmd.ExecutionRecord) {
	status := "FAILED"
	if rec.Outcome != nil && rec.Outcome.Success {
		status = "OK"
	}

	fmt.Printf("%s  %s  [%s]  %s\n", rec.Timestamp.Format("15:04:05"), rec.Command.ID, rec.Transport, status)

	if devicecmd.HasDisplayableData(rec.Payload) {
		fmt.Println(devicecmd.Format(rec.Payload))
	} else if !rec.Command.HasCompletionCallback {
		fmt.Println("(fire-and-forget: no direct result)")
	}
}
