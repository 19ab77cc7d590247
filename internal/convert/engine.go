package convert

import "fmt"

// New returns the converter for an engine name.
func New(engine, pandocPath, from, to string) (Converter, error) {
	switch engine {
	case "", EnginePandoc:
		return NewPandocConverter(pandocPath, from, to), nil
	case EngineNative:
		return NewNativeConverter(), nil
	default:
		return nil, fmt.Errorf("%w: unknown engine %q", ErrConverterNotFound, engine)
	}
}
