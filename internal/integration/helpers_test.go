//go:build integration

package integration_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/couchcryptid/air-quality-forecast/internal/adapter/flatfile"
	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("airq-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// writeDataDir writes a complete data directory. Zones in polluted have a
// last-day CO2 reading above the limit.
func writeDataDir(t *testing.T, polluted ...domain.ZoneID) string {
	t.Helper()
	dir := t.TempDir()
	hot := map[domain.ZoneID]bool{}
	for _, z := range polluted {
		hot[z] = true
	}

	files := flatfile.DefaultHistoricalFiles()
	for _, z := range domain.Zones() {
		var b strings.Builder
		for day := 1; day <= domain.SeriesLength; day++ {
			co2 := 450.0
			if hot[z] && day == domain.SeriesLength {
				co2 = 1800
			}
			fmt.Fprintf(&b, "%.1f 6.0 21.0 12.0\n", co2)
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, files[z]), []byte(b.String()), 0o600))
	}

	climate := "Zona,Temperatura,Viento,Humedad\n"
	for _, z := range domain.Zones() {
		climate += z.Name() + ",17.0,3.0,65.0\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, flatfile.DefaultClimateFile), []byte(climate), 0o600))
	return dir
}
