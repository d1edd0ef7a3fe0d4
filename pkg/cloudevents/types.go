package cloudevents

import (
	"time"
)

// Event types emitted by the replenishment service
const (
	StockSnapshotLoaded       = "wms.stock.snapshot-loaded"
	ReplenishmentResolved     = "wms.replenishment.resolved"
	ReplenishmentListImported = "wms.replenishment.list-imported"
	ReplenishmentDivided      = "wms.replenishment.divided"
	ItemPicked                = "wms.picking.item-picked"
	ItemDiscarded             = "wms.picking.item-discarded"
)

// SourceReplenishment is the CloudEvents source of this service
const SourceReplenishment = "/wms/replenishment-service"

// WMSCloudEvent represents a CloudEvents v1.0 compliant event
type WMSCloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         string      `json:"subject,omitempty"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType string      `json:"datacontenttype"`
	Data            interface{} `json:"data"`

	// Extensions
	CorrelationID string `json:"wmscorrelationid,omitempty"`
	TraceParent   string `json:"traceparent,omitempty"`
	TraceState    string `json:"tracestate,omitempty"`
}

// Extension attribute names, also used as ce-* Kafka headers
const (
	ExtCorrelationID = "wmscorrelationid"
	ExtTraceParent   = "traceparent"
	ExtTraceState    = "tracestate"
)

// Extensions returns the non-empty extension attributes of the event
func (e *WMSCloudEvent) Extensions() map[string]string {
	ext := make(map[string]string, 3)
	if e.CorrelationID != "" {
		ext[ExtCorrelationID] = e.CorrelationID
	}
	if e.TraceParent != "" {
		ext[ExtTraceParent] = e.TraceParent
	}
	if e.TraceState != "" {
		ext[ExtTraceState] = e.TraceState
	}
	return ext
}
