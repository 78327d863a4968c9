package cmd

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/c9s/poloniex/pkg/poloniex"
)

var RootCmd = &cobra.Command{
	Use:   "poloniex",
	Short: "poloniex exchange client",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "debug flag")

	RootCmd.PersistentFlags().String("poloniex-api-key", "", "poloniex api key")
	RootCmd.PersistentFlags().String("poloniex-api-secret", "", "poloniex api secret")

	RootCmd.PersistentFlags().Bool("confirm", false, "ask for confirmation before placing, moving or cancelling orders")
	RootCmd.PersistentFlags().Bool("trace-calls", false, "log every api call with its arguments and result")
}

// newExchange builds the exchange client from the bound flags and env vars.
func newExchange() *poloniex.Exchange {
	var opts []poloniex.Option
	if viper.GetBool("confirm") {
		opts = append(opts, poloniex.WithConfirmer(poloniex.NewConsoleConfirmer()))
	}
	if viper.GetBool("trace-calls") {
		opts = append(opts, poloniex.WithTracer(poloniex.NewLogTracer()))
	}

	return poloniex.New(
		viper.GetString("poloniex-api-key"),
		viper.GetString("poloniex-api-secret"),
		opts...)
}

func Execute() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Enable environment variable binding, the env vars are not overloaded yet.
	viper.AutomaticEnv()

	// Once the flags are defined, we can bind config keys with flags.
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		log.WithError(err).Errorf("failed to bind persistent flags. please check the flag settings.")
	}

	log.SetFormatter(&prefixed.TextFormatter{})

	if viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}

	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
