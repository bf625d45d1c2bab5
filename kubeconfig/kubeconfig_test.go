//nolint:testpackage // whitebox testing
package kubeconfig

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"skctl/common"
	"skctl/zones"

	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
)

func testCredential(zone string) zones.ZoneCredential {
	return zones.ZoneCredential{
		Zone:                     zone,
		Server:                   "https://" + zone + ".example.com",
		CertificateAuthorityData: base64.StdEncoding.EncodeToString([]byte("ca-data-" + zone)),
		Token:                    "token-" + zone,
	}
}

func TestMergeIntoEmptyDocument(t *testing.T) {
	cfg := clientcmdapi.NewConfig()
	cred := zones.ZoneCredential{
		Zone:   "prod",
		Server: "https://z1.example.com",
		Token:  "abc",
		// no CA data, but TLS verification explicitly skipped
		InsecureSkipTLSVerify: true,
	}

	if err := Merge(cfg, cred, ""); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if len(cfg.Clusters) != 1 || len(cfg.AuthInfos) != 1 || len(cfg.Contexts) != 1 {
		t.Fatalf("expected exactly one cluster/user/context, got %d/%d/%d",
			len(cfg.Clusters), len(cfg.AuthInfos), len(cfg.Contexts))
	}

	cluster, ok := cfg.Clusters["prod"]
	if !ok {
		t.Fatal("cluster \"prod\" missing")
	}
	if cluster.Server != "https://z1.example.com" {
		t.Errorf("cluster server = %q, want %q", cluster.Server, "https://z1.example.com")
	}
	if !cluster.InsecureSkipTLSVerify {
		t.Error("cluster should skip TLS verification")
	}

	user, ok := cfg.AuthInfos["prod"]
	if !ok {
		t.Fatal("user \"prod\" missing")
	}
	if user.Token != "abc" {
		t.Errorf("user token = %q, want %q", user.Token, "abc")
	}

	kubeContext, ok := cfg.Contexts["prod"]
	if !ok {
		t.Fatal("context \"prod\" missing")
	}
	if kubeContext.Cluster != "prod" || kubeContext.AuthInfo != "prod" {
		t.Errorf("context binds %q/%q, want prod/prod", kubeContext.Cluster, kubeContext.AuthInfo)
	}
	if kubeContext.Namespace != "" {
		t.Errorf("context namespace = %q, want unset", kubeContext.Namespace)
	}

	if cfg.CurrentContext != "prod" {
		t.Errorf("current context = %q, want %q", cfg.CurrentContext, "prod")
	}
}

func TestMergeDecodesCertificateAuthorityData(t *testing.T) {
	cfg := clientcmdapi.NewConfig()
	if err := Merge(cfg, testCredential("dev"), ""); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	got := cfg.Clusters["dev"].CertificateAuthorityData
	if string(got) != "ca-data-dev" {
		t.Errorf("CA data = %q, want %q", got, "ca-data-dev")
	}
}

func TestMergeValidation(t *testing.T) {
	tests := []struct {
		name string
		cred zones.ZoneCredential
	}{
		{
			name: "missing zone name",
			cred: zones.ZoneCredential{Server: "https://z1.example.com"},
		},
		{
			name: "missing server url",
			cred: zones.ZoneCredential{Zone: "prod"},
		},
		{
			name: "malformed ca data",
			cred: zones.ZoneCredential{Zone: "prod", Server: "https://z1.example.com", CertificateAuthorityData: "%%% not base64 %%%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := clientcmdapi.NewConfig()
			before := cfg.DeepCopy()

			if err := Merge(cfg, tt.cred, ""); err == nil {
				t.Fatal("Merge() expected an error")
			}
			if !reflect.DeepEqual(cfg, before) {
				t.Error("Merge() mutated the document despite failing validation")
			}
		})
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	cfg := clientcmdapi.NewConfig()
	cred := testCredential("staging")

	if err := Merge(cfg, cred, "web"); err != nil {
		t.Fatalf("first Merge() error = %v", err)
	}
	afterFirst := cfg.DeepCopy()

	if err := Merge(cfg, cred, "web"); err != nil {
		t.Fatalf("second Merge() error = %v", err)
	}

	if !reflect.DeepEqual(cfg, afterFirst) {
		t.Errorf("second merge changed the document:\ngot = %+v\nwant = %+v", cfg, afterFirst)
	}
}

func TestMergeLeavesUnrelatedEntriesAlone(t *testing.T) {
	cfg := clientcmdapi.NewConfig()
	for _, name := range []string{"minikube", "corp-cluster", "edge"} {
		if err := Merge(cfg, testCredential(name), ""); err != nil {
			t.Fatalf("seeding Merge() error = %v", err)
		}
	}
	cfg.Contexts["corp-cluster"].Namespace = "team-a"
	before := cfg.DeepCopy()

	if err := Merge(cfg, testCredential("newzone"), ""); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	for _, name := range []string{"minikube", "corp-cluster", "edge"} {
		if !reflect.DeepEqual(cfg.Clusters[name], before.Clusters[name]) {
			t.Errorf("cluster %q changed", name)
		}
		if !reflect.DeepEqual(cfg.AuthInfos[name], before.AuthInfos[name]) {
			t.Errorf("user %q changed", name)
		}
		if !reflect.DeepEqual(cfg.Contexts[name], before.Contexts[name]) {
			t.Errorf("context %q changed", name)
		}
	}
	if len(cfg.Clusters) != 4 {
		t.Errorf("expected 4 clusters, got %d", len(cfg.Clusters))
	}
	if cfg.CurrentContext != "newzone" {
		t.Errorf("current context = %q, want %q", cfg.CurrentContext, "newzone")
	}
}

func TestMergeNamespaceHandling(t *testing.T) {
	tests := []struct {
		name              string
		existingNamespace string
		argument          string
		want              string
	}{
		{name: "explicit namespace wins", existingNamespace: "old", argument: "new", want: "new"},
		{name: "existing namespace inherited", existingNamespace: "old", argument: "", want: "old"},
		{name: "no namespace anywhere", existingNamespace: "", argument: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := clientcmdapi.NewConfig()
			cred := testCredential("zone")
			if err := Merge(cfg, cred, ""); err != nil {
				t.Fatalf("seeding Merge() error = %v", err)
			}
			cfg.Contexts["zone"].Namespace = tt.existingNamespace

			if err := Merge(cfg, cred, tt.argument); err != nil {
				t.Fatalf("Merge() error = %v", err)
			}
			if got := cfg.Contexts["zone"].Namespace; got != tt.want {
				t.Errorf("namespace = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMergeRefreshesExistingEntry(t *testing.T) {
	cfg := clientcmdapi.NewConfig()
	if err := Merge(cfg, testCredential("prod"), ""); err != nil {
		t.Fatalf("seeding Merge() error = %v", err)
	}

	refreshed := zones.ZoneCredential{
		Zone:                     "prod",
		Server:                   "https://prod-2.example.com",
		CertificateAuthorityData: base64.StdEncoding.EncodeToString([]byte("rotated-ca")),
		Token:                    "rotated-token",
	}
	if err := Merge(cfg, refreshed, ""); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if len(cfg.Clusters) != 1 || len(cfg.AuthInfos) != 1 || len(cfg.Contexts) != 1 {
		t.Fatalf("refresh created duplicates: %d/%d/%d clusters/users/contexts",
			len(cfg.Clusters), len(cfg.AuthInfos), len(cfg.Contexts))
	}
	if cfg.Clusters["prod"].Server != "https://prod-2.example.com" {
		t.Errorf("server not refreshed: %q", cfg.Clusters["prod"].Server)
	}
	if cfg.AuthInfos["prod"].Token != "rotated-token" {
		t.Errorf("token not refreshed: %q", cfg.AuthInfos["prod"].Token)
	}
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Clusters) != 0 || len(cfg.AuthInfos) != 0 || len(cfg.Contexts) != 0 || cfg.CurrentContext != "" {
		t.Errorf("expected an empty document, got %+v", cfg)
	}
}

func TestLoadCorruptFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte("{{{ not yaml"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected an error for a corrupt file")
	}
	if !errors.Is(err, common.ErrConfigParse) {
		t.Errorf("Load() error = %v, want ErrConfigParse", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	original := clientcmdapi.NewConfig()
	if err := Merge(original, testCredential("alpha"), "ns-a"); err != nil {
		t.Fatal(err)
	}
	if err := Merge(original, testCredential("beta"), ""); err != nil {
		t.Fatal(err)
	}
	if err := Write(original, path); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	first, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// A no-op save must reproduce the same semantic content.
	if err = Write(first, path); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("round trip changed the document:\ngot = %+v\nwant = %+v", second, first)
	}
}

func TestUpdateIsIdempotentOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	cred := testCredential("gamma")

	if err := Update(path, cred, ""); err != nil {
		t.Fatalf("first Update() error = %v", err)
	}
	firstContent, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if err = Update(path, cred, ""); err != nil {
		t.Fatalf("second Update() error = %v", err)
	}
	secondContent, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(firstContent) != string(secondContent) {
		t.Errorf("second update changed the file:\ngot:\n%s\nwant:\n%s", secondContent, firstContent)
	}
}

func TestUpdateFailsBeforeTouchingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	if err := Update(path, testCredential("existing"), ""); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// Empty server URL must be rejected before any file mutation.
	bad := zones.ZoneCredential{Zone: "broken"}
	if err = Update(path, bad, ""); err == nil {
		t.Fatal("Update() expected an error")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("failed update modified the kubeconfig file")
	}
}

func TestWriteFailureLeavesNoPartialFile(t *testing.T) {
	dir := t.TempDir()

	// The target path is a non-empty directory, so the final rename must
	// fail after serialization succeeded.
	path := filepath.Join(dir, "config")
	if err := os.MkdirAll(filepath.Join(path, "occupied"), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := clientcmdapi.NewConfig()
	if err := Merge(cfg, testCredential("delta"), ""); err != nil {
		t.Fatal(err)
	}

	if err := Write(cfg, path); err == nil {
		t.Fatal("Write() expected an error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if entry.Name() != "config" {
			t.Errorf("leftover temporary file %q after failed write", entry.Name())
		}
	}
}

func TestWritePreservesFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	seed := clientcmdapi.NewConfig()
	if err := Merge(seed, testCredential("epsilon"), ""); err != nil {
		t.Fatal(err)
	}

	content, err := clientcmd.Write(*seed)
	if err != nil {
		t.Fatal(err)
	}
	if err = os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err = Update(path, testCredential("zeta"), ""); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("file mode = %v, want 0644", info.Mode().Perm())
	}
}
