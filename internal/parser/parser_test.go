package parser

import (
	"reflect"
	"testing"

	"github.com/kubilitics/kubeplay/internal/cluster"
)

func mustParse(t *testing.T, input string) Command {
	t.Helper()
	cmd, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", input, err)
	}
	return cmd
}

func TestParseGetDefaults(t *testing.T) {
	cmd := mustParse(t, "kubectl get pods")
	if cmd.Grammar != GrammarKubectl || cmd.Action != "get" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if cmd.Kind != cluster.Pod {
		t.Fatalf("expected Pod kind, got %v", cmd.Kind)
	}
	if cmd.Namespace != "default" {
		t.Fatalf("expected default namespace, got %q", cmd.Namespace)
	}
	if cmd.Output != FormatTable {
		t.Fatalf("expected table output, got %q", cmd.Output)
	}
	if cmd.Name != "" {
		t.Fatalf("expected no name, got %q", cmd.Name)
	}
}

func TestParseKindAliases(t *testing.T) {
	cases := map[string]cluster.Kind{
		"po":         cluster.Pod,
		"pod":        cluster.Pod,
		"pods":       cluster.Pod,
		"cm":         cluster.ConfigMap,
		"configmap":  cluster.ConfigMap,
		"configmaps": cluster.ConfigMap,
		"secret":     cluster.Secret,
		"secrets":    cluster.Secret,
	}
	for alias, want := range cases {
		cmd := mustParse(t, "kubectl get "+alias)
		if cmd.Kind != want {
			t.Errorf("alias %q: expected %v, got %v", alias, want, cmd.Kind)
		}
	}
}

func TestParseFlagSpellings(t *testing.T) {
	a := mustParse(t, "kubectl get pods -n kube-system -o yaml")
	b := mustParse(t, "kubectl get pods --namespace=kube-system --output=yaml")
	if a.Namespace != "kube-system" || b.Namespace != "kube-system" {
		t.Fatalf("expected kube-system in both, got %q and %q", a.Namespace, b.Namespace)
	}
	if a.Output != FormatYAML || b.Output != FormatYAML {
		t.Fatalf("expected yaml in both, got %q and %q", a.Output, b.Output)
	}
}

func TestParseSelector(t *testing.T) {
	cmd := mustParse(t, "kubectl get pods -l app=web,tier=frontend")
	want := map[string]string{"app": "web", "tier": "frontend"}
	if !reflect.DeepEqual(cmd.Selector, want) {
		t.Fatalf("expected %v, got %v", want, cmd.Selector)
	}

	if _, err := Parse("kubectl get pods -l ==="); err == nil {
		t.Fatal("expected invalid selector error")
	}
}

func TestParseAllNamespaces(t *testing.T) {
	cmd := mustParse(t, "kubectl get pods -A")
	if !cmd.AllNamespaces {
		t.Fatal("expected AllNamespaces set")
	}
}

func TestParseGetByName(t *testing.T) {
	cmd := mustParse(t, "kubectl get pod web")
	if cmd.Name != "web" {
		t.Fatalf("expected name web, got %q", cmd.Name)
	}
}

func TestParseRejections(t *testing.T) {
	cases := []struct {
		input string
	}{
		{""},
		{"   "},
		{"kubectl"},
		{"kubectl frobnicate pods"},
		{"kubectl get deployments"},
		{"kubectl delete pod"},
		{"kubectl describe pod"},
		{"kubectl logs"},
		{"kubectl exec"},
		{"kubectl label pod"},
		{"kubectl annotate pod"},
		{"kubectl get pods -n"},
		{"kubectl get pods -o xml"},
		{"kubectl logs web --tail notanumber"},
		{"kubectl logs web --tail -5"},
		{"frobnicate"},
	}
	for _, tc := range cases {
		_, err := Parse(tc.input)
		if err == nil {
			t.Errorf("Parse(%q): expected error", tc.input)
			continue
		}
		if !IsParseError(err) {
			t.Errorf("Parse(%q): expected ParseError, got %T", tc.input, err)
		}
	}
}

func TestParseExecCapturesTrailingCommand(t *testing.T) {
	cmd := mustParse(t, "kubectl exec web -n prod -- ls -la /etc")
	if cmd.Kind != cluster.Pod || cmd.Name != "web" {
		t.Fatalf("unexpected target: %+v", cmd)
	}
	if cmd.Namespace != "prod" {
		t.Fatalf("expected prod namespace, got %q", cmd.Namespace)
	}
	want := []string{"ls", "-la", "/etc"}
	if !reflect.DeepEqual(cmd.ExecArgs, want) {
		t.Fatalf("expected %v, got %v", want, cmd.ExecArgs)
	}
}

func TestParseExecWithoutSeparator(t *testing.T) {
	cmd := mustParse(t, "kubectl exec web")
	if len(cmd.ExecArgs) != 0 {
		t.Fatalf("expected no exec args, got %v", cmd.ExecArgs)
	}
}

func TestParseLogsDefaultsToPod(t *testing.T) {
	cmd := mustParse(t, "kubectl logs web --tail 20")
	if cmd.Kind != cluster.Pod || cmd.Name != "web" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if cmd.Tail != 20 {
		t.Fatalf("expected tail 20, got %d", cmd.Tail)
	}
}

func TestParseApplyFilename(t *testing.T) {
	cmd := mustParse(t, "kubectl apply -f /manifests/pod.yaml")
	if cmd.Filename != "/manifests/pod.yaml" {
		t.Fatalf("expected filename, got %q", cmd.Filename)
	}
	if cmd.Name != "" {
		t.Fatalf("expected no positional name, got %q", cmd.Name)
	}
}

func TestParseLabelChangeSet(t *testing.T) {
	cmd := mustParse(t, "kubectl label pod web env=prod tier- garbage --overwrite")
	if cmd.Name != "web" || cmd.Kind != cluster.Pod {
		t.Fatalf("unexpected target: %+v", cmd)
	}
	if !cmd.Overwrite {
		t.Fatal("expected overwrite set")
	}
	if len(cmd.ChangeSet) != 2 {
		t.Fatalf("expected 2 changes, got %v", cmd.ChangeSet)
	}
	if v := cmd.ChangeSet["env"]; v == nil || *v != "prod" {
		t.Fatalf("expected env=prod, got %v", v)
	}
	if v, ok := cmd.ChangeSet["tier"]; !ok || v != nil {
		t.Fatalf("expected tier removal, got %v present=%v", v, ok)
	}
}

func TestParseLabelEmptyValue(t *testing.T) {
	cmd := mustParse(t, "kubectl label pod web env=")
	if v := cmd.ChangeSet["env"]; v == nil || *v != "" {
		t.Fatalf("expected empty-string value, got %v", v)
	}
}

func TestParseAnnotateNamespaceFlagBeforeName(t *testing.T) {
	cmd := mustParse(t, "kubectl annotate pod -n prod web note=hi")
	if cmd.Name != "web" || cmd.Namespace != "prod" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestParseShellCommands(t *testing.T) {
	cmd := mustParse(t, "ls /manifests")
	if cmd.Grammar != GrammarShell || cmd.Action != "ls" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if !reflect.DeepEqual(cmd.Args, []string{"/manifests"}) {
		t.Fatalf("unexpected args: %v", cmd.Args)
	}

	cmd = mustParse(t, "rm -r /tmp")
	if cmd.Flags["r"] != "true" {
		t.Fatalf("expected r flag, got %v", cmd.Flags)
	}

	cmd = mustParse(t, "echo hello world")
	if !reflect.DeepEqual(cmd.Args, []string{"hello", "world"}) {
		t.Fatalf("unexpected args: %v", cmd.Args)
	}
}

func TestParseIsPure(t *testing.T) {
	const input = "kubectl label pod web env=prod -n staging --overwrite"
	first := mustParse(t, input)
	second := mustParse(t, input)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results:\n%+v\n%+v", first, second)
	}
}
