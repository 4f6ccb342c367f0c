package instrumentation

import (
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
)

// Components of the taskmanager binary.
const (
	ComponentAPI = "api"
	ComponentMCP = "mcp"
)

// Task backends.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Resource attribute keys describing the deployment.
const (
	ResourceAttrComponent    = "taskmanager.component"
	ResourceAttrBackend      = "taskmanager.backend"
	ResourceAttrMCPTransport = "taskmanager.mcp.transport"
	ResourceAttrAPIHost      = "taskmanager.api.host"
)

// Deployment describes which part of taskmanager this process runs and
// where its tasks live. It is attached to all exported telemetry as
// resource attributes.
type Deployment struct {
	// Component is ComponentAPI for the REST server or ComponentMCP for the tool adapter.
	Component string

	// Backend is BackendLocal for an in-process store or BackendRemote for the task API.
	Backend string

	// MCPTransport is the MCP transport name. Only set for ComponentMCP.
	MCPTransport string

	// APIURL is the task API base URL. Required for BackendRemote.
	APIURL string
}

// LocalAPI is the deployment of the REST server.
func LocalAPI() Deployment {
	return Deployment{Component: ComponentAPI, Backend: BackendLocal}
}

// MCPDeployment is the deployment of the tool adapter. An empty apiURL
// selects the local backend.
func MCPDeployment(transport, apiURL string) Deployment {
	d := Deployment{Component: ComponentMCP, MCPTransport: transport, Backend: BackendLocal}
	if apiURL != "" {
		d.Backend = BackendRemote
		d.APIURL = apiURL
	}
	return d
}

// Validate checks the deployment. The zero value is valid.
func (d Deployment) Validate() error {
	switch d.Component {
	case "", ComponentAPI, ComponentMCP:
	default:
		return fmt.Errorf("invalid component %q, must be one of: %s, %s", d.Component, ComponentAPI, ComponentMCP)
	}

	switch d.Backend {
	case "", BackendLocal:
	case BackendRemote:
		if d.APIURL == "" {
			return fmt.Errorf("API URL is required for the remote backend")
		}
		if _, err := apiHost(d.APIURL); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid backend %q, must be one of: %s, %s", d.Backend, BackendLocal, BackendRemote)
	}

	if d.Component == ComponentAPI && d.MCPTransport != "" {
		return fmt.Errorf("MCP transport is only valid for the %s component", ComponentMCP)
	}
	return nil
}

// Attributes returns the resource attributes for d. Only the host of the
// API URL is recorded, never credentials or paths.
func (d Deployment) Attributes() []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if d.Component != "" {
		attrs = append(attrs, attribute.String(ResourceAttrComponent, d.Component))
	}
	if d.Backend != "" {
		attrs = append(attrs, attribute.String(ResourceAttrBackend, d.Backend))
	}
	if d.MCPTransport != "" {
		attrs = append(attrs, attribute.String(ResourceAttrMCPTransport, d.MCPTransport))
	}
	if d.Backend == BackendRemote {
		if host, err := apiHost(d.APIURL); err == nil {
			attrs = append(attrs, attribute.String(ResourceAttrAPIHost, host))
		}
	}
	return attrs
}

func apiHost(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid API URL %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid API URL %q: missing host", raw)
	}
	return u.Host, nil
}
