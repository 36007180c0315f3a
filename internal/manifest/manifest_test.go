package manifest

import (
	"strings"
	"testing"

	"github.com/kubilitics/kubeplay/internal/cluster"
)

const podYAML = `apiVersion: v1
kind: Pod
metadata:
  name: web
  namespace: prod
  labels:
    app: web
spec:
  containers:
    - name: web
      image: nginx:1.27
`

func TestDecodePod(t *testing.T) {
	res, err := Decode([]byte(podYAML))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if res.Kind != cluster.Pod || res.Name() != "web" || res.Namespace() != "prod" {
		t.Fatalf("unexpected resource: %+v", res)
	}
	if len(res.Spec.Containers) != 1 || res.Spec.Containers[0].Image != "nginx:1.27" {
		t.Fatalf("unexpected spec: %+v", res.Spec)
	}
	if res.Labels()["app"] != "web" {
		t.Fatalf("unexpected labels: %v", res.Labels())
	}
}

func TestDecodeLeavesNamespaceAsWritten(t *testing.T) {
	res, err := Decode([]byte("kind: ConfigMap\nmetadata:\n  name: cfg\n"))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if res.Namespace() != "" {
		t.Fatalf("expected empty namespace, got %q", res.Namespace())
	}
}

func TestDecodeConfigMapData(t *testing.T) {
	res, err := Decode([]byte("kind: ConfigMap\nmetadata:\n  name: cfg\ndata:\n  KEY: value\n"))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if res.Data["KEY"] != "value" {
		t.Fatalf("unexpected data: %v", res.Data)
	}
}

func TestDecodeRejections(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"missing kind", "metadata:\n  name: x\n", "missing kind"},
		{"unsupported kind", "kind: Deployment\nmetadata:\n  name: x\n", "unsupported kind"},
		{"bad apiVersion", "apiVersion: apps/v1\nkind: Pod\nmetadata:\n  name: x\n", "unsupported apiVersion"},
		{"missing name", "kind: Pod\nmetadata: {}\n", "missing metadata.name"},
		{"pod without containers", "kind: Pod\nmetadata:\n  name: x\n", "at least one container"},
		{"not yaml", ": : :", "invalid manifest"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected %q in error, got %v", tc.wantErr, err)
			}
		})
	}
}
