package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/pokerclub/internal/model"
)

type RecorderSuite struct {
	suite.Suite
	registry *prometheus.Registry
	recorder *Recorder
}

func TestRecorderSuite(t *testing.T) {
	suite.Run(t, new(RecorderSuite))
}

func (s *RecorderSuite) SetupTest() {
	s.registry = prometheus.NewRegistry()
	s.recorder = New(s.registry)
}

func (s *RecorderSuite) TestSettlementSplitsDirection() {
	s.recorder.Settlement("finish", 125)
	s.recorder.Settlement("finish", 10)
	s.recorder.Settlement("delete_result", -40)
	s.recorder.Settlement("delete_result", 0)

	s.Equal(2.0, testutil.ToFloat64(s.recorder.adjustments.WithLabelValues("finish")))
	s.Equal(2.0, testutil.ToFloat64(s.recorder.adjustments.WithLabelValues("delete_result")))
	s.Equal(135.0, testutil.ToFloat64(s.recorder.points.WithLabelValues("finish", "awarded")))
	s.Equal(40.0, testutil.ToFloat64(s.recorder.points.WithLabelValues("delete_result", "revoked")))
}

func (s *RecorderSuite) TestOperationErrorClassification() {
	s.recorder.OperationError("finish", fmt.Errorf("finish t1: %w", model.ErrConflict))
	s.recorder.OperationError("finish", model.ErrTournamentFinished)
	s.recorder.OperationError("finish", model.ErrTournamentNotFound)
	s.recorder.OperationError("finish", errors.New("connection reset"))
	s.recorder.OperationError("finish", nil)

	s.Equal(1.0, testutil.ToFloat64(s.recorder.conflicts.WithLabelValues("finish")))
	s.Equal(1.0, testutil.ToFloat64(s.recorder.failures.WithLabelValues("finish")))
}

func (s *RecorderSuite) TestCollectorsRegistered() {
	s.recorder.LeaderboardPublished()
	s.recorder.HTTPRequest("GET", 200, 0.01)

	count, err := testutil.GatherAndCount(s.registry,
		"pokerclub_leaderboard_publishes_total",
		"pokerclub_http_request_duration_seconds",
	)
	s.Require().NoError(err)
	s.Equal(2, count)
}
