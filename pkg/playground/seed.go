package playground

import "github.com/kubilitics/kubeplay/internal/vfs"

// Seed manifests written into the virtual filesystem on start-up, so a
// first-time user has something to apply.
var seedFiles = map[string]string{
	"/manifests/pod.yaml": `apiVersion: v1
kind: Pod
metadata:
  name: web
  labels:
    app: web
spec:
  containers:
    - name: web
      image: nginx:1.27
`,
	"/manifests/configmap.yaml": `apiVersion: v1
kind: ConfigMap
metadata:
  name: web-config
data:
  LOG_LEVEL: info
  PORT: "8080"
`,
	"/manifests/secret.yaml": `apiVersion: v1
kind: Secret
metadata:
  name: web-credentials
type: Opaque
data:
  username: YWRtaW4=
  password: cGFzc3dvcmQ=
`,
}

func seed(fs *vfs.FS) error {
	for path, content := range seedFiles {
		if err := fs.WriteFile(path, content); err != nil {
			return err
		}
	}
	return nil
}
