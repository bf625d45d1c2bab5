package endpoints

import "fmt"

// DefaultAPIHost is the production Sharedkube API base URL.
const DefaultAPIHost = "https://api.sharedkube.io/api/v1"

func TokensVerify(apiHost string) string {
	return fmt.Sprintf("%s/tokens/verify", apiHost)
}

func Zones(apiHost string) string {
	return fmt.Sprintf("%s/zones", apiHost)
}

func ZoneByName(apiHost string, zoneName string) string {
	return fmt.Sprintf("%s/zones/name/%s", apiHost, zoneName)
}

func ZoneKubeconfig(apiHost string, zoneID string) string {
	return fmt.Sprintf("%s/zones/%s/kubeconfig", apiHost, zoneID)
}

func ZoneToken(apiHost string, zoneID string) string {
	return fmt.Sprintf("%s/zones/%s/token", apiHost, zoneID)
}
