package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomePartial = "partial"
	outcomeFailed  = "failed"
	outcomeAborted = "aborted"
)

var runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "actionagent_automation_runs_total",
	Help: "Automation runs by terminal outcome.",
}, []string{"outcome"})
