// Package synth generates the simulated runtime output of pods: log
// lines for `kubectl logs` and canned responses for `kubectl exec`.
// Output is deterministic for a given pod name so lessons and tests can
// rely on it.
package synth

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/kubilitics/kubeplay/internal/cluster"
)

// DefaultLogLines is how many lines `logs` prints when --tail is absent.
const DefaultLogLines = 10

var logTemplates = []string{
	"GET /healthz 200 %dms",
	"GET /api/v1/items 200 %dms",
	"POST /api/v1/items 201 %dms",
	"connection accepted from 10.0.%d.12",
	"cache refresh completed in %dms",
	"serving request id=%04d",
}

// Logs returns n synthetic log lines for the named pod, timestamped
// backwards from now. The pod name seeds the generator, so the same pod
// always logs the same lines.
func Logs(podName string, n int, now time.Time) []string {
	if n <= 0 {
		n = DefaultLogLines
	}
	h := fnv.New64a()
	h.Write([]byte(podName))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		at := now.Add(-time.Duration(n-i) * time.Second)
		tpl := logTemplates[rng.Intn(len(logTemplates))]
		lines = append(lines, fmt.Sprintf("%s %s", at.UTC().Format(time.RFC3339), fmt.Sprintf(tpl, rng.Intn(900)+10)))
	}
	return lines
}

// Exec simulates running argv inside the pod's first container.
func Exec(pod cluster.Resource, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("you must specify a command to execute")
	}
	switch argv[0] {
	case "hostname":
		return pod.Name(), nil
	case "pwd":
		return "/", nil
	case "whoami":
		return "root", nil
	case "ls":
		return "bin\ndev\netc\nproc\ntmp\nusr\nvar", nil
	case "env":
		return fmt.Sprintf("HOSTNAME=%s\nKUBERNETES_SERVICE_HOST=10.96.0.1\nPATH=/usr/local/bin:/usr/bin:/bin", pod.Name()), nil
	case "echo":
		return strings.Join(argv[1:], " "), nil
	case "date":
		return time.Now().UTC().Format(time.UnixDate), nil
	default:
		return "", fmt.Errorf("sh: %s: command not found", argv[0])
	}
}
