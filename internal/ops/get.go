package ops

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/util/duration"
	"sigs.k8s.io/yaml"

	"github.com/kubilitics/kubeplay/internal/cluster"
	"github.com/kubilitics/kubeplay/internal/parser"
)

// get lists resources, or fetches one by name. Read-only: no events.
func (s *Session) get(cmd parser.Command) (string, error) {
	if cmd.Name != "" {
		res, err := s.deps.Store.Get(cmd.Kind, cmd.Name, cmd.Namespace)
		if err != nil {
			return "", err
		}
		return s.render(cmd, []cluster.Resource{res}, true)
	}

	ns := cmd.Namespace
	if cmd.AllNamespaces {
		ns = ""
	}
	var sel labels.Selector
	if len(cmd.Selector) > 0 {
		sel = labels.SelectorFromSet(labels.Set(cmd.Selector))
	}
	items := s.deps.Store.List(cmd.Kind, ns, sel)
	if len(items) == 0 {
		if cmd.AllNamespaces {
			return "No resources found.", nil
		}
		return fmt.Sprintf("No resources found in %s namespace.", cmd.Namespace), nil
	}
	return s.render(cmd, items, false)
}

func (s *Session) render(cmd parser.Command, items []cluster.Resource, single bool) (string, error) {
	switch cmd.Output {
	case parser.FormatYAML:
		if single {
			b, err := yaml.Marshal(items[0])
			return strings.TrimRight(string(b), "\n"), err
		}
		b, err := yaml.Marshal(items)
		return strings.TrimRight(string(b), "\n"), err
	case parser.FormatJSON:
		var b []byte
		var err error
		if single {
			b, err = json.MarshalIndent(items[0], "", "  ")
		} else {
			b, err = json.MarshalIndent(items, "", "  ")
		}
		return string(b), err
	default:
		return s.renderTable(cmd, items), nil
	}
}

func (s *Session) renderTable(cmd parser.Command, items []cluster.Resource) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 3, 0, 3, ' ', 0)
	now := s.deps.Clock()

	headers := []string{"NAME"}
	switch cmd.Kind {
	case cluster.Pod:
		headers = append(headers, "READY", "STATUS", "RESTARTS", "AGE")
	case cluster.ConfigMap:
		headers = append(headers, "DATA", "AGE")
	case cluster.Secret:
		headers = append(headers, "TYPE", "DATA", "AGE")
	}
	if cmd.AllNamespaces {
		headers = append([]string{"NAMESPACE"}, headers...)
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))

	for _, res := range items {
		age := duration.HumanDuration(now.Sub(res.Metadata.CreationTimestamp.Time))
		row := []string{res.Name()}
		switch cmd.Kind {
		case cluster.Pod:
			row = append(row, podReady(res), podPhase(res), fmt.Sprint(podRestarts(res)), age)
		case cluster.ConfigMap:
			row = append(row, fmt.Sprint(len(res.Data)), age)
		case cluster.Secret:
			row = append(row, secretType(res), fmt.Sprint(len(res.Data)), age)
		}
		if cmd.AllNamespaces {
			row = append([]string{res.Namespace()}, row...)
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// describe prints a human-readable detail block for one resource.
func (s *Session) describe(cmd parser.Command) (string, error) {
	res, err := s.deps.Store.Get(cmd.Kind, cmd.Name, cmd.Namespace)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Name:         %s\n", res.Name())
	fmt.Fprintf(&b, "Namespace:    %s\n", res.Namespace())
	fmt.Fprintf(&b, "Labels:       %s\n", formatMap(res.Metadata.Labels))
	fmt.Fprintf(&b, "Annotations:  %s\n", formatMap(res.Metadata.Annotations))
	fmt.Fprintf(&b, "Created:      %s\n", res.Metadata.CreationTimestamp.UTC().Format("Mon, 02 Jan 2006 15:04:05 -0700"))

	switch res.Kind {
	case cluster.Pod:
		fmt.Fprintf(&b, "Status:       %s\n", podPhase(res))
		fmt.Fprintf(&b, "Containers:\n")
		for _, c := range res.Spec.Containers {
			fmt.Fprintf(&b, "  %s:\n    Image:  %s\n", c.Name, c.Image)
		}
	case cluster.ConfigMap:
		fmt.Fprintf(&b, "\nData\n====\n")
		for _, key := range sortedKeys(res.Data) {
			fmt.Fprintf(&b, "%s:\n----\n%s\n", key, res.Data[key])
		}
	case cluster.Secret:
		fmt.Fprintf(&b, "Type:         %s\n", secretType(res))
		fmt.Fprintf(&b, "\nData\n====\n")
		for _, key := range sortedKeys(res.Data) {
			fmt.Fprintf(&b, "%s:  %d bytes\n", key, len(res.Data[key]))
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func podReady(res cluster.Resource) string {
	total := len(res.Spec.Containers)
	ready := 0
	if res.Status != nil {
		for _, cs := range res.Status.ContainerStatuses {
			if cs.Ready {
				ready++
			}
		}
	}
	return fmt.Sprintf("%d/%d", ready, total)
}

func podPhase(res cluster.Resource) string {
	if res.Status == nil {
		return "Pending"
	}
	return string(res.Status.Phase)
}

func podRestarts(res cluster.Resource) int {
	if res.Status == nil {
		return 0
	}
	n := 0
	for _, cs := range res.Status.ContainerStatuses {
		n += int(cs.RestartCount)
	}
	return n
}

func secretType(res cluster.Resource) string {
	if res.Type == "" {
		return "Opaque"
	}
	return string(res.Type)
}

func formatMap(m map[string]string) string {
	if len(m) == 0 {
		return "<none>"
	}
	pairs := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		pairs = append(pairs, k+"="+m[k])
	}
	return strings.Join(pairs, ",")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
