// Package cluster defines the resource model of the simulated cluster:
// the supported kinds, the Resource shape shared by all of them, and the
// alias table used to resolve user-typed resource types.
package cluster

import (
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Kind identifies a resource kind tracked by the playground.
type Kind string

const (
	Pod       Kind = "Pod"
	ConfigMap Kind = "ConfigMap"
	Secret    Kind = "Secret"
)

// Kinds returns every supported kind in display order.
func Kinds() []Kind {
	return []Kind{Pod, ConfigMap, Secret}
}

// Lower returns the lowercase singular form used in command output
// ("pod/web created").
func (k Kind) Lower() string {
	return strings.ToLower(string(k))
}

// Plural returns the lowercase plural resource name ("pods").
func (k Kind) Plural() string {
	return k.Lower() + "s"
}

// GroupResource adapts the kind for apimachinery error constructors, so
// NotFound/AlreadyExists errors read exactly like kubectl's.
func (k Kind) GroupResource() schema.GroupResource {
	return schema.GroupResource{Resource: k.Plural()}
}

var kindAliases = map[string]Kind{
	"po":         Pod,
	"pod":        Pod,
	"pods":       Pod,
	"cm":         ConfigMap,
	"configmap":  ConfigMap,
	"configmaps": ConfigMap,
	"secret":     Secret,
	"secrets":    Secret,
}

// ParseKind resolves a user-typed resource type (including short aliases
// like "po" and "cm") to a Kind.
func ParseKind(s string) (Kind, bool) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

// Resource is the tagged union over the supported kinds. Kind selects
// which of the optional payload fields are meaningful: Spec/Status for
// pods, Data for configmaps and secrets, Type for secrets only.
type Resource struct {
	APIVersion string            `json:"apiVersion,omitempty"`
	Kind       Kind              `json:"kind"`
	Metadata   metav1.ObjectMeta `json:"metadata"`

	Spec   *corev1.PodSpec   `json:"spec,omitempty"`
	Status *corev1.PodStatus `json:"status,omitempty"`

	Data map[string]string `json:"data,omitempty"`
	Type corev1.SecretType `json:"type,omitempty"`
}

func (r Resource) Name() string      { return r.Metadata.Name }
func (r Resource) Namespace() string { return r.Metadata.Namespace }

// Labels returns the label map, never nil.
func (r Resource) Labels() map[string]string {
	if r.Metadata.Labels == nil {
		return map[string]string{}
	}
	return r.Metadata.Labels
}

// Annotations returns the annotation map, never nil.
func (r Resource) Annotations() map[string]string {
	if r.Metadata.Annotations == nil {
		return map[string]string{}
	}
	return r.Metadata.Annotations
}

// DeepCopy returns a copy sharing no mutable state with the receiver.
// Events and store snapshots hand out copies so that callers can never
// mutate stored resources behind the reducer's back.
func (r Resource) DeepCopy() Resource {
	out := r
	out.Metadata = *r.Metadata.DeepCopy()
	if r.Spec != nil {
		out.Spec = r.Spec.DeepCopy()
	}
	if r.Status != nil {
		out.Status = r.Status.DeepCopy()
	}
	if r.Data != nil {
		out.Data = make(map[string]string, len(r.Data))
		for k, v := range r.Data {
			out.Data[k] = v
		}
	}
	return out
}
