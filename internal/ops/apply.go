package ops

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kubilitics/kubeplay/internal/cluster"
	"github.com/kubilitics/kubeplay/internal/events"
	"github.com/kubilitics/kubeplay/internal/manifest"
	"github.com/kubilitics/kubeplay/internal/parser"
)

// apply creates the manifest's resource, or updates it in place when it
// already exists. Unlike create, apply never fails on an existing target.
func (s *Session) apply(cmd parser.Command) (string, error) {
	res, err := s.loadManifest(cmd)
	if err != nil {
		return "", err
	}
	old, err := s.deps.Store.Get(res.Kind, res.Name(), res.Namespace())
	switch {
	case err == nil:
		// Keep the original creation timestamp across updates.
		res.Metadata.CreationTimestamp = old.Metadata.CreationTimestamp
		s.emit(events.Updated, res, &old)
		return fmt.Sprintf("%s/%s configured", res.Kind.Lower(), res.Name()), nil
	case apierrors.IsNotFound(err):
		s.emit(events.Created, res, nil)
		return fmt.Sprintf("%s/%s created", res.Kind.Lower(), res.Name()), nil
	default:
		return "", err
	}
}

// create is the strict variant: an existing target is an AlreadyExists
// error and nothing is emitted.
func (s *Session) create(cmd parser.Command) (string, error) {
	res, err := s.loadManifest(cmd)
	if err != nil {
		return "", err
	}
	if _, err := s.deps.Store.Get(res.Kind, res.Name(), res.Namespace()); err == nil {
		return "", apierrors.NewAlreadyExists(res.Kind.GroupResource(), res.Name())
	} else if !apierrors.IsNotFound(err) {
		return "", err
	}
	s.emit(events.Created, res, nil)
	return fmt.Sprintf("%s/%s created", res.Kind.Lower(), res.Name()), nil
}

// loadManifest reads the -f file from the virtual filesystem, decodes it
// and fills in the runtime fields the manifest does not carry.
func (s *Session) loadManifest(cmd parser.Command) (cluster.Resource, error) {
	if cmd.Filename == "" {
		return cluster.Resource{}, fmt.Errorf("must specify -f with a manifest file")
	}
	text, err := s.deps.FS.ReadFile(cmd.Filename)
	if err != nil {
		return cluster.Resource{}, err
	}
	res, err := manifest.Decode([]byte(text))
	if err != nil {
		return cluster.Resource{}, err
	}
	if res.Metadata.Namespace == "" {
		res.Metadata.Namespace = cmd.Namespace
	}
	return s.materialize(res), nil
}

// materialize synthesizes the server-side fields of a freshly submitted
// resource: apiVersion, creation timestamp, and a running pod status.
func (s *Session) materialize(res cluster.Resource) cluster.Resource {
	if res.APIVersion == "" {
		res.APIVersion = "v1"
	}
	if res.Metadata.CreationTimestamp.IsZero() {
		res.Metadata.CreationTimestamp = metav1.NewTime(s.deps.Clock())
	}
	if res.Kind == cluster.Pod && res.Status == nil {
		statuses := make([]corev1.ContainerStatus, 0, len(res.Spec.Containers))
		for _, c := range res.Spec.Containers {
			statuses = append(statuses, corev1.ContainerStatus{
				Name:  c.Name,
				Image: c.Image,
				Ready: true,
			})
		}
		res.Status = &corev1.PodStatus{
			Phase:             corev1.PodRunning,
			ContainerStatuses: statuses,
		}
	}
	return res
}
