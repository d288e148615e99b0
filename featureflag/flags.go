package featureflag

type Flag string

const (
	FlagDisableBuildMetrics Flag = "DISABLE_BUILD_METRICS"
	FlagKeepTrees           Flag = "KEEP_TREES"
)
