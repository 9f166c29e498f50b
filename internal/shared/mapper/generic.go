// Package mapper provides small generic converters. Instances are built by
// constructors and injected; there is no package-level registry.
package mapper

type Mapper[T any, D any] struct {
	toDTO func(T) D
}

func New[T any, D any](toDTO func(T) D) *Mapper[T, D] {
	return &Mapper[T, D]{toDTO: toDTO}
}

func (m *Mapper[T, D]) ToDTO(entity T) D {
	return m.toDTO(entity)
}

// ToDTOList maps every element; nil in, nil out.
func (m *Mapper[T, D]) ToDTOList(entities []T) []D {
	return MapSlice(entities, m.toDTO)
}

// MapSlice applies mapFunc to each element. Returns nil if items is nil.
func MapSlice[T any, R any](items []T, mapFunc func(T) R) []R {
	if items == nil {
		return nil
	}

	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, mapFunc(item))
	}
	return result
}

// MapSliceWithError stops at the first failing element.
func MapSliceWithError[T any, R any](items []T, mapFunc func(T) (R, error)) ([]R, error) {
	if items == nil {
		return nil, nil
	}

	result := make([]R, 0, len(items))
	for _, item := range items {
		mapped, err := mapFunc(item)
		if err != nil {
			return nil, err
		}
		result = append(result, mapped)
	}
	return result, nil
}
