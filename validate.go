package metadoc

// Validate checks that v contains only values expressible in the metadoc
// model: string leaves and Nodes whose children all validate. Any other shape
// (number, boolean, array, null) fails with ErrUnsupportedValueType. The
// check is pure and stops at the first violation.
func Validate(v any) error {
	switch t := v.(type) {
	case string:
		return nil
	case Node:
		for _, e := range t {
			if err := Validate(e.Value); err != nil {
				return err
			}
		}
		return nil
	default:
		return ErrUnsupportedValueType
	}
}
