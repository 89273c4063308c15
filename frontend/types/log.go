package types

import (
	"fmt"
	"log/slog"

	"github.com/cottand/tyverse/internal/log"
)

// types, parameters and values are only printed once a record is emitted
func init() {
	log.SetAttrRenderer(renderAttr)
}

type typeLogValuer struct{ Type }
type tyParamLogValuer struct{ TyParam }
type valueLogValuer struct{ ValueObj }

func (l typeLogValuer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("str", l.Type.String()),
		slog.String("hash", fmt.Sprintf("%x", l.Type.Hash())),
	)
}
func (l tyParamLogValuer) LogValue() slog.Value { return slog.StringValue(l.TyParam.String()) }
func (l valueLogValuer) LogValue() slog.Value   { return slog.StringValue(l.ValueObj.String()) }

func renderAttr(attr slog.Attr) slog.Attr {
	if attr.Value.Kind() != slog.KindAny {
		return attr
	}
	switch value := attr.Value.Any().(type) {
	case Type:
		attr.Value = slog.AnyValue(typeLogValuer{value})
	case TyParam:
		attr.Value = slog.AnyValue(tyParamLogValuer{value})
	case ValueObj:
		attr.Value = slog.AnyValue(valueLogValuer{value})
	}
	return attr
}
