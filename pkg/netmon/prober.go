package netmon

import (
	"context"
	"math"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"netpulse.xyz/switch-health-service/pkg/models"
)

var pingLatencyPattern = regexp.MustCompile(`time[=<]([0-9.]+)`)

// probe issues a single reachability check against address. Every failure
// mode, including inability to run the ping binary at all, folds into an
// unreachable result so one broken device never fails a cycle.
func (n *NetMon) probe(ctx context.Context, address string, timeout time.Duration) models.ProbeResult {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	waitSecs := int(math.Ceil(timeout.Seconds()))
	if waitSecs < 1 {
		waitSecs = 1
	}

	// small grace over the ping deadline so the command itself reports
	// the timeout instead of getting killed mid-write
	ctx, cancel := context.WithTimeout(ctx, timeout+500*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(ctx, "ping", "-c", "1", "-W", strconv.Itoa(waitSecs), address)
	output, err := cmd.Output()
	if err != nil {
		return models.ProbeResult{Reachable: false}
	}

	return models.ProbeResult{
		Reachable: true,
		LatencyMs: ParsePingLatency(string(output)),
	}
}

// ParsePingLatency extracts the round-trip time in whole milliseconds from
// ping output. Returns nil when no latency can be found, which still counts
// as a reachable response.
func ParsePingLatency(output string) *int64 {
	matches := pingLatencyPattern.FindStringSubmatch(output)
	if matches == nil {
		return nil
	}
	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return nil
	}
	ms := int64(math.Round(value))
	return &ms
}

type IProberImpl struct {
	mon *NetMon
}

func (ip *IProberImpl) Probe(ctx context.Context, address string, timeout time.Duration) models.ProbeResult {
	return ip.mon.probe(ctx, address, timeout)
}

func (n *NetMon) GetIProber() IProber {
	return &IProberImpl{mon: n}
}
