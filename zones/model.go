package zones

import "encoding/json"

// Zone is a tenant-scoped namespace/quota resource on the Sharedkube
// control plane. Zones are read-only from the CLI's perspective.
type Zone struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	ResourceQuotaSize ResourceQuota `json:"resource_quota_size"`
	Status            string        `json:"status"`
	Type              string        `json:"type"`
}

// ResourceQuota fields are json.Number so wire values reach the table
// output exactly as the API sent them.
type ResourceQuota struct {
	CPU     json.Number `json:"cpu"`
	Memory  json.Number `json:"memory"`
	Storage json.Number `json:"storage"`
}

// UserInfo is the identity returned by the token verification endpoint.
type UserInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ZoneCredential is the short-lived connection material issued when
// switching to a zone. It lives only long enough to be written into the
// kubeconfig file.
type ZoneCredential struct {
	Zone                     string `json:"zone"`
	Server                   string `json:"server"`
	CertificateAuthorityData string `json:"certificate_authority_data"`
	InsecureSkipTLSVerify    bool   `json:"insecure_skip_tls_verify"`
	Token                    string `json:"token"`
}
