package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Logging errors
	CreateLogFileError

	// Taxonomy errors
	TaxonNotFoundError
	TaxonomyEmptyError

	// Checklist filter errors
	ChecklistCriteriaError

	// Spatial errors
	SpatialThresholdError
	SpatialOverlapModeError
	SpatialGeometryError

	// Environmental data errors
	EnvVariableUnknownError
	EnvLayerUnknownError
	EnvStatUnknownError

	// Transport errors
	TransportRequestError
	TransportStatusError
	TransportDecodeError

	// Cache errors
	CacheOpenError
	CacheReadError
	CacheWriteError

	// Metadata errors
	MetaTaxonomyError
	MetaChecklistError
	MetaEnvError
	MetaVersionError
)
