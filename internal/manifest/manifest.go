// Package manifest decodes YAML manifests into cluster resources.
package manifest

import (
	"fmt"

	"sigs.k8s.io/yaml"

	"github.com/kubilitics/kubeplay/internal/cluster"
)

// Decode parses one YAML (or JSON) manifest and validates the fields the
// playground requires: a supported kind, a core apiVersion, and a
// metadata name. The namespace is left as written; the caller decides the
// default (the command's -n flag wins over nothing, never over an
// explicit manifest namespace).
func Decode(data []byte) (cluster.Resource, error) {
	var res cluster.Resource
	if err := yaml.Unmarshal(data, &res); err != nil {
		return cluster.Resource{}, fmt.Errorf("invalid manifest: %w", err)
	}
	switch res.Kind {
	case cluster.Pod, cluster.ConfigMap, cluster.Secret:
	case "":
		return cluster.Resource{}, fmt.Errorf("manifest is missing kind")
	default:
		return cluster.Resource{}, fmt.Errorf("unsupported kind %q (supported: Pod, ConfigMap, Secret)", res.Kind)
	}
	if res.APIVersion != "" && res.APIVersion != "v1" {
		return cluster.Resource{}, fmt.Errorf("unsupported apiVersion %q (only v1)", res.APIVersion)
	}
	if res.Metadata.Name == "" {
		return cluster.Resource{}, fmt.Errorf("manifest is missing metadata.name")
	}
	if res.Kind == cluster.Pod {
		if res.Spec == nil || len(res.Spec.Containers) == 0 {
			return cluster.Resource{}, fmt.Errorf("pod %q must declare at least one container", res.Metadata.Name)
		}
	}
	return res, nil
}
