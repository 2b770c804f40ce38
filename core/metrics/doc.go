package metrics

// Package metrics defines the sink interfaces used to observe sequencing
// runs. Sinks like PromSink and InfluxSink live in infra/metrics and can be
// combined with NewMultiSink. NewMetricsSink returns a MultiSink automatically
// when several sinks are configured.
