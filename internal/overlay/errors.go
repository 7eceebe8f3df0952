package overlay

import (
	"github.com/pingcap/errors"
)

// Ошибки «оверлей невозможен». Ни одна не фатальна для вызывающего:
// данные возвращаются без наложения переводов.
var (
	ErrNoLocalizationDescriptor = errors.Normalize(
		"no localization descriptor for table %s",
		errors.RFCCodeText("OVL:ErrNoLocalizationDescriptor"),
	)
	ErrOverlayFieldsUnavailable = errors.Normalize(
		"not all overlay fields available for table %s, missing %v",
		errors.RFCCodeText("OVL:ErrOverlayFieldsUnavailable"),
	)
	ErrMissingBaseKeys = errors.Normalize(
		"records of table %s have no uid/pid",
		errors.RFCCodeText("OVL:ErrMissingBaseKeys"),
	)
	ErrInvalidForeignTable = errors.Normalize(
		"translation table %s is not a valid overlay table for %s",
		errors.RFCCodeText("OVL:ErrInvalidForeignTable"),
	)
)

// IsSkip — ошибка означает «наложение пропущено», а не сбой хранилища.
func IsSkip(err error) bool {
	return ErrNoLocalizationDescriptor.Equal(err) ||
		ErrOverlayFieldsUnavailable.Equal(err) ||
		ErrMissingBaseKeys.Equal(err) ||
		ErrInvalidForeignTable.Equal(err)
}
