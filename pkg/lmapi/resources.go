package lmapi

import "context"

// Device is a monitored device record.
type Device struct {
	ID              int               `json:"id"`
	Name            string            `json:"name"`
	DisplayName     string            `json:"displayName"`
	HostGroupIDs    string            `json:"hostGroupIds"`
	HostStatus      string            `json:"hostStatus"`
	PreferredCollID int               `json:"preferredCollectorId"`
	DeviceType      int               `json:"deviceType"`
	CreatedOn       int64             `json:"createdOn"`
	CustomProps     []Property        `json:"customProperties"`
	SystemProps     []Property        `json:"systemProperties"`
	Extra           map[string]string `json:"-"`
}

// Property is one name/value pair on a device or group.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Alert is one platform alert record.
type Alert struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	Severity          int    `json:"severity"`
	Cleared           bool   `json:"cleared"`
	Acked             bool   `json:"acked"`
	StartEpoch        int64  `json:"startEpoch"`
	EndEpoch          int64  `json:"endEpoch"`
	MonitorObjectName string `json:"monitorObjectName"`
	InstanceName      string `json:"instanceName"`
	DataPointName     string `json:"dataPointName"`
	AlertValue        string `json:"alertValue"`
}

// Website is a synthetic-check website resource.
type Website struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Domain      string `json:"domain"`
	Type        string `json:"type"`
	Description string `json:"description"`
	StopMonitor bool   `json:"stopMonitoring"`
	Status      string `json:"status"`
}

// Collector is a data-collection agent record.
type Collector struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Hostname    string `json:"hostname"`
	Platform    string `json:"platform"`
	Size        string `json:"collectorSize"`
	IsDown      bool   `json:"isDown"`
	Build       string `json:"build"`
}

// DevicesClient lists and reads device resources.
type DevicesClient interface {
	List(ctx context.Context, opts *ListOptions) ([]Device, error)
	Get(ctx context.Context, id int) (*Device, error)
	Properties(ctx context.Context, id int) ([]Property, error)
}

// AlertsClient lists alert resources.
type AlertsClient interface {
	List(ctx context.Context, opts *ListOptions) ([]Alert, error)
}

// WebsitesClient lists and reads website resources.
type WebsitesClient interface {
	List(ctx context.Context, opts *ListOptions) ([]Website, error)
	Get(ctx context.Context, id int) (*Website, error)
}

// CollectorsClient lists and reads collector resources.
type CollectorsClient interface {
	List(ctx context.Context, opts *ListOptions) ([]Collector, error)
	Get(ctx context.Context, id int) (*Collector, error)
}
