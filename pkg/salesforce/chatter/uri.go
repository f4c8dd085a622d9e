package chatter

import (
	"github.com/natserract/sfchatter/pkg/salesforce"
	"go.uber.org/zap"
)

// BuildURI returns the absolute URI for endpoint:
//
//	{instance_url}/services/data/{apiVersion}[/connect/communities/{networkId}]{endpoint}
//
// endpoint is appended verbatim, so any ids interpolated into it must already
// be safe for a URL path.
func BuildURI(endpoint, apiVersion string, opts *salesforce.RequestOptions) string {
	var instanceURL, networkID string
	if opts != nil {
		if opts.OAuth != nil {
			instanceURL = opts.OAuth.InstanceURL
		}
		networkID = opts.NetworkID
	}

	uri := instanceURL + "/services/data/" + apiVersion
	if networkID != "" {
		uri += "/connect/communities/" + networkID
	}
	return uri + endpoint
}

func (c *Chatter) buildURI(endpoint, apiVersion string, opts *salesforce.RequestOptions) string {
	uri := BuildURI(endpoint, apiVersion, opts)
	c.logger.Debug("Built request URI", zap.String("uri", uri))
	return uri
}
