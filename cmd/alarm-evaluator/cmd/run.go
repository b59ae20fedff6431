package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/version"
	"github.com/spf13/cobra"

	"github.com/telemetry-platform/alarm-evaluator/internal/common"
	"github.com/telemetry-platform/alarm-evaluator/internal/config"
	"github.com/telemetry-platform/alarm-evaluator/internal/factory"
	"github.com/telemetry-platform/alarm-evaluator/internal/log"
	"github.com/telemetry-platform/alarm-evaluator/pkg/pipeline"
)

var conf *config.Config

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Consume telemetry events from kafka and evaluate event alarms",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		conf, err = config.Parse(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to parse config %s: %w", cfgFile, err)
		}

		// Init logger
		err = log.Init(conf.Logs)
		if err != nil {
			return fmt.Errorf("failed to init logger: %w", err)
		}

		logger := log.Logger()

		// Dump generic information
		logger.Info("Starting alarm evaluator",
			"version", version.Info(),
			"buildContext", version.BuildContext(),
		)
		logger.Info("Using config", "config", fmt.Sprintf("%+v", conf))

		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		logger := log.Logger()

		// Set max procs based on cpu limits
		err := common.SetMaxProcs()
		if err != nil {
			logger.Error(err, "failed to set max procs")

			return
		}

		// Set max memory
		err = common.SetMemLimit()
		if err != nil {
			logger.Error(err, "failed to set mem limit")

			return
		}

		// Listen to sigterm and interrupt signals
		ctx := common.SetupSignalHandler(context.Background())

		// Create clients
		valkeyClient, closeValkey, err := factory.CreateValkeyClient(ctx, conf.Valkey)
		if err != nil {
			logger.Error(err, "failed to create valkey client")

			return
		}

		consumer, err := factory.CreateKafkaConsumer(conf.Kafka)
		if err != nil {
			logger.Error(err, "failed to create kafka consumer")

			return
		}

		producer, err := factory.CreateKafkaProducer(conf.Kafka)
		if err != nil {
			logger.Error(err, "failed to create kafka producer")

			return
		}

		// Create metrics registry
		registry := prometheus.NewRegistry()

		err = registry.Register(collectors.NewGoCollector())
		if err != nil {
			logger.Error(err, "failed to register go collector")

			return
		}

		// Create pipeline
		mainProcessing, err := factory.CreateMainProcessing(valkeyClient, producer, conf, registry)
		if err != nil {
			logger.Error(err, "failed to create main processing")

			return
		}

		decoratedProcessing, err := factory.DecorateProcessing(mainProcessing, registry)
		if err != nil {
			logger.Error(err, "failed to decorate main processing")

			return
		}

		errorProcessing, err := factory.CreateErrorProcessing(ctx, conf)
		if err != nil {
			logger.Error(err, "failed to create error processing")

			return
		}

		decoratedErrorProcessing, err := factory.DecorateErrorProcessing(errorProcessing, registry)
		if err != nil {
			logger.Error(err, "failed to decorate error processing")

			return
		}

		runner := pipeline.NewRunner(consumer, []string{conf.Kafka.Consumer.Topic}, decoratedProcessing, decoratedErrorProcessing).WithLogger(logger)

		// Start metrics server
		metricsServer := factory.CreatePrometheusServer(conf.Metrics, registry)

		go func() {
			sErr := metricsServer.ListenAndServe()
			if sErr != nil && !errors.Is(sErr, http.ErrServerClosed) {
				logger.Error(sErr, "metrics server failed")
			}
		}()

		// Start pipeline
		err = runner.Start(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error(err, "pipeline stopped with error")
		}

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.GracefulDuration)
		defer cancel()

		err = metricsServer.Shutdown(shutdownCtx)
		if err != nil {
			logger.Error(err, "failed to shutdown metrics server")
		}

		err = consumer.Close()
		if err != nil {
			logger.Error(err, "failed to close kafka consumer")
		}

		err = producer.Close()
		if err != nil {
			logger.Error(err, "failed to close kafka producer")
		}

		err = closeValkey(shutdownCtx)
		if err != nil {
			logger.Error(err, "failed to close valkey client")
		}

		logger.V(2).Info("Processing stopped")
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
