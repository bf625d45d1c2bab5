// Package kubeconfig updates the user's kubeconfig file so kubectl
// targets a Sharedkube zone. The file is shared with other tooling, so
// the update is a read-patch-write cycle: entries the CLI does not own
// are carried through untouched, and the write is atomic.
package kubeconfig

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"skctl/common"
	"skctl/zones"

	"github.com/golang/glog"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
	"k8s.io/client-go/util/homedir"
)

const (
	defaultFileMode = os.FileMode(0o600)
	kubeDirMode     = os.FileMode(0o755)
)

// DefaultPath returns the standard kubeconfig location.
func DefaultPath() string {
	return filepath.Join(homedir.HomeDir(), ".kube", "config")
}

// Load reads the kubeconfig document at path. A missing file yields an
// empty document; an existing file that cannot be parsed is fatal so
// hand-edited configuration is never silently discarded.
func Load(path string) (*clientcmdapi.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		glog.V(1).Infof("info: no kubeconfig at %s, starting from an empty one", path)
		return clientcmdapi.NewConfig(), nil
	}

	loaded, err := clientcmd.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: couldn't parse kubeconfig %s: %w", common.ErrConfigParse, path, err)
	}

	return loaded, nil
}

// Merge inserts or refreshes the cluster/user/context triple for the
// given zone credential and makes it the current context. All three
// entries share the zone name; an entry that already carries that name
// is the same logical zone being refreshed, so its endpoint and token
// are overwritten in place. Entries under any other name are left
// alone.
//
// The namespace argument wins when non-empty; otherwise a namespace
// already present on an overwritten context is inherited.
func Merge(cfg *clientcmdapi.Config, cred zones.ZoneCredential, namespace string) error {
	if cred.Zone == "" {
		return errors.New("zone credential carries no zone name")
	}
	if cred.Server == "" {
		return fmt.Errorf("zone credential for %q carries no server URL", cred.Zone)
	}

	var caData []byte
	if !cred.InsecureSkipTLSVerify {
		decoded, err := base64.StdEncoding.DecodeString(cred.CertificateAuthorityData)
		if err != nil {
			return fmt.Errorf("zone credential for %q carries malformed certificate authority data: %w", cred.Zone, err)
		}
		caData = decoded
	}

	if cfg.Clusters == nil {
		cfg.Clusters = map[string]*clientcmdapi.Cluster{}
	}
	if cfg.AuthInfos == nil {
		cfg.AuthInfos = map[string]*clientcmdapi.AuthInfo{}
	}
	if cfg.Contexts == nil {
		cfg.Contexts = map[string]*clientcmdapi.Context{}
	}

	name := cred.Zone

	cluster, ok := cfg.Clusters[name]
	if !ok {
		cluster = clientcmdapi.NewCluster()
		cfg.Clusters[name] = cluster
	}
	cluster.Server = cred.Server
	cluster.CertificateAuthority = ""
	cluster.CertificateAuthorityData = caData
	cluster.InsecureSkipTLSVerify = cred.InsecureSkipTLSVerify

	user, ok := cfg.AuthInfos[name]
	if !ok {
		user = clientcmdapi.NewAuthInfo()
		cfg.AuthInfos[name] = user
	}
	user.Token = cred.Token

	kubeContext, ok := cfg.Contexts[name]
	if !ok {
		kubeContext = clientcmdapi.NewContext()
		cfg.Contexts[name] = kubeContext
	}
	kubeContext.Cluster = name
	kubeContext.AuthInfo = name
	if namespace != "" {
		kubeContext.Namespace = namespace
	}

	cfg.CurrentContext = name

	return nil
}

// Write serializes the full document and replaces path atomically via a
// temporary file in the same directory. The original file mode is
// preserved; new files get owner-only permissions since the document
// holds bearer tokens.
func Write(cfg *clientcmdapi.Config, path string) error {
	content, err := clientcmd.Write(*cfg)
	if err != nil {
		return fmt.Errorf("couldn't serialize kubeconfig: %w", err)
	}

	mode := defaultFileMode
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, kubeDirMode); err != nil {
		return fmt.Errorf("couldn't create directory %s: %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, ".config.*")
	if err != nil {
		return fmt.Errorf("couldn't create temporary kubeconfig: %w", err)
	}
	tempPath := tempFile.Name()

	if err = tempFile.Chmod(mode); err != nil {
		closeErr := tempFile.Close()
		removeErr := os.Remove(tempPath)
		return errors.Join(fmt.Errorf("couldn't set kubeconfig permissions: %w", err), closeErr, removeErr)
	}

	if _, err = tempFile.Write(content); err != nil {
		closeErr := tempFile.Close()
		removeErr := os.Remove(tempPath)
		return errors.Join(fmt.Errorf("couldn't write kubeconfig: %w", err), closeErr, removeErr)
	}

	if err = tempFile.Close(); err != nil {
		removeErr := os.Remove(tempPath)
		return errors.Join(fmt.Errorf("couldn't save kubeconfig: %w", err), removeErr)
	}

	if err = os.Rename(tempPath, path); err != nil {
		removeErr := os.Remove(tempPath)
		return errors.Join(fmt.Errorf("couldn't replace kubeconfig %s: %w", path, err), removeErr)
	}

	glog.V(1).Infof("info: kubeconfig %s updated, current context is %s", path, cfg.CurrentContext)
	return nil
}

// Update runs one full load-merge-write cycle against the file at path.
// The document is fully computed in memory before anything touches the
// disk, so a failure at any step leaves the original file as it was.
func Update(path string, cred zones.ZoneCredential, namespace string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}

	if err = Merge(cfg, cred, namespace); err != nil {
		return err
	}

	return Write(cfg, path)
}
