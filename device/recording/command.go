package recording

import (
	"image"

	"github.com/gogpu/gprint/device"
)

// CommandType identifies the device call a command records.
type CommandType uint8

const (
	CmdStartPage           CommandType = iota // StartPage
	CmdEndPage                                // EndPage
	CmdBeginPath                              // BeginPath
	CmdMoveTo                                 // MoveTo
	CmdLineTo                                 // LineTo
	CmdBezierTo                               // BezierTo
	CmdCloseFigure                            // CloseFigure
	CmdEndPath                                // EndPath
	CmdSetFillMode                            // SetFillMode
	CmdFillPath                               // FillPath
	CmdStrokePath                             // StrokePath
	CmdSelectClipPath                         // SelectClipPath
	CmdResetClip                              // ResetClip
	CmdSelectSolidBrush                       // SelectSolidBrush
	CmdSelectPen                              // SelectPen
	CmdSelectStyledPen                        // SelectStyledPen
	CmdFrameRect                              // FrameRect
	CmdFillRect                               // FillRect
	CmdSelectFont                             // SelectFont
	CmdTextOut                                // TextOut
	CmdGlyphsOut                              // GlyphsOut
	CmdMeasureString                          // MeasureString
	CmdSetWorldTransform                      // SetWorldTransform
	CmdScaleWorldTransform                    // ScaleWorldTransform
	CmdSetGraphicsMode                        // SetGraphicsMode
	CmdDrawPackedImage                        // DrawPackedImage
	CmdAbortPage                              // AbortPage
)

var commandTypeNames = [...]string{
	CmdStartPage:           "StartPage",
	CmdEndPage:             "EndPage",
	CmdBeginPath:           "BeginPath",
	CmdMoveTo:              "MoveTo",
	CmdLineTo:              "LineTo",
	CmdBezierTo:            "BezierTo",
	CmdCloseFigure:         "CloseFigure",
	CmdEndPath:             "EndPath",
	CmdSetFillMode:         "SetFillMode",
	CmdFillPath:            "FillPath",
	CmdStrokePath:          "StrokePath",
	CmdSelectClipPath:      "SelectClipPath",
	CmdResetClip:           "ResetClip",
	CmdSelectSolidBrush:    "SelectSolidBrush",
	CmdSelectPen:           "SelectPen",
	CmdSelectStyledPen:     "SelectStyledPen",
	CmdFrameRect:           "FrameRect",
	CmdFillRect:            "FillRect",
	CmdSelectFont:          "SelectFont",
	CmdTextOut:             "TextOut",
	CmdGlyphsOut:           "GlyphsOut",
	CmdMeasureString:       "MeasureString",
	CmdSetWorldTransform:   "SetWorldTransform",
	CmdScaleWorldTransform: "ScaleWorldTransform",
	CmdSetGraphicsMode:     "SetGraphicsMode",
	CmdDrawPackedImage:     "DrawPackedImage",
	CmdAbortPage:           "AbortPage",
}

// String returns the name of the device call.
func (t CommandType) String() string {
	if int(t) < len(commandTypeNames) {
		return commandTypeNames[t]
	}
	return "Unknown"
}

// Command is one recorded device call.
type Command interface {
	Type() CommandType
}

// StartPageCommand records StartPage.
type StartPageCommand struct {
	// Page is the 1-based page number on this device.
	Page int
}

// Type implements Command.
func (StartPageCommand) Type() CommandType { return CmdStartPage }

// EndPageCommand records EndPage.
type EndPageCommand struct {
	Page int
}

// Type implements Command.
func (EndPageCommand) Type() CommandType { return CmdEndPage }

// AbortPageCommand records AbortPage.
type AbortPageCommand struct {
	Page int
}

// Type implements Command.
func (AbortPageCommand) Type() CommandType { return CmdAbortPage }

// BeginPathCommand records BeginPath.
type BeginPathCommand struct{}

// Type implements Command.
func (BeginPathCommand) Type() CommandType { return CmdBeginPath }

// MoveToCommand records MoveTo. X and Y are the arguments as passed; Page
// is the point after the world transform in effect at the call.
type MoveToCommand struct {
	X, Y float64
	Page [2]float64
}

// Type implements Command.
func (MoveToCommand) Type() CommandType { return CmdMoveTo }

// LineToCommand records LineTo.
type LineToCommand struct {
	X, Y float64
	Page [2]float64
}

// Type implements Command.
func (LineToCommand) Type() CommandType { return CmdLineTo }

// BezierToCommand records BezierTo.
type BezierToCommand struct {
	C1X, C1Y float64
	C2X, C2Y float64
	X, Y     float64
	Page     [2]float64
}

// Type implements Command.
func (BezierToCommand) Type() CommandType { return CmdBezierTo }

// CloseFigureCommand records CloseFigure.
type CloseFigureCommand struct{}

// Type implements Command.
func (CloseFigureCommand) Type() CommandType { return CmdCloseFigure }

// EndPathCommand records EndPath.
type EndPathCommand struct{}

// Type implements Command.
func (EndPathCommand) Type() CommandType { return CmdEndPath }

// SetFillModeCommand records SetFillMode.
type SetFillModeCommand struct {
	Mode device.FillMode
}

// Type implements Command.
func (SetFillModeCommand) Type() CommandType { return CmdSetFillMode }

// FillPathCommand records FillPath with the brush it filled with.
type FillPathCommand struct {
	Mode  device.FillMode
	Color device.Color
}

// Type implements Command.
func (FillPathCommand) Type() CommandType { return CmdFillPath }

// StrokePathCommand records StrokePath with the pen it stroked with.
type StrokePathCommand struct {
	Pen Pen

	// World is the world transform the pen width was mapped through.
	World device.Matrix
}

// Type implements Command.
func (StrokePathCommand) Type() CommandType { return CmdStrokePath }

// SelectClipPathCommand records SelectClipPath.
type SelectClipPathCommand struct {
	Mode device.FillMode
}

// Type implements Command.
func (SelectClipPathCommand) Type() CommandType { return CmdSelectClipPath }

// ResetClipCommand records ResetClip.
type ResetClipCommand struct{}

// Type implements Command.
func (ResetClipCommand) Type() CommandType { return CmdResetClip }

// SelectSolidBrushCommand records SelectSolidBrush.
type SelectSolidBrushCommand struct {
	Color device.Color
}

// Type implements Command.
func (SelectSolidBrushCommand) Type() CommandType { return CmdSelectSolidBrush }

// Pen is a selected pen as the device sees it.
type Pen struct {
	Width      float64
	Color      device.Color
	Cap        device.LineCap
	Join       device.LineJoin
	MiterLimit float64
	Styled     bool
}

// SelectPenCommand records SelectPen.
type SelectPenCommand struct {
	Width float64
	Color device.Color
}

// Type implements Command.
func (SelectPenCommand) Type() CommandType { return CmdSelectPen }

// SelectStyledPenCommand records SelectStyledPen and its answer.
type SelectStyledPenCommand struct {
	Pen Pen
	OK  bool
}

// Type implements Command.
func (SelectStyledPenCommand) Type() CommandType { return CmdSelectStyledPen }

// FrameRectCommand records FrameRect.
type FrameRectCommand struct {
	Rect device.Rect
	Pen  Pen
}

// Type implements Command.
func (FrameRectCommand) Type() CommandType { return CmdFrameRect }

// FillRectCommand records FillRect.
type FillRectCommand struct {
	Rect  device.Rect
	Color device.Color
}

// Type implements Command.
func (FillRectCommand) Type() CommandType { return CmdFillRect }

// SelectFontCommand records SelectFont and its answer.
type SelectFontCommand struct {
	Spec device.FontSpec
	OK   bool
}

// Type implements Command.
func (SelectFontCommand) Type() CommandType { return CmdSelectFont }

// TextOutCommand records TextOut.
type TextOutCommand struct {
	Text     string
	X, Y     float64
	Advances []float64
	Font     device.FontSpec
	Color    device.Color
}

// Type implements Command.
func (TextOutCommand) Type() CommandType { return CmdTextOut }

// GlyphsOutCommand records GlyphsOut.
type GlyphsOutCommand struct {
	Glyphs   []uint16
	X, Y     float64
	Advances []float64
	Font     device.FontSpec
	Color    device.Color
}

// Type implements Command.
func (GlyphsOutCommand) Type() CommandType { return CmdGlyphsOut }

// MeasureStringCommand records MeasureString and its answer.
type MeasureStringCommand struct {
	Text  string
	Width int
}

// Type implements Command.
func (MeasureStringCommand) Type() CommandType { return CmdMeasureString }

// SetWorldTransformCommand records SetWorldTransform.
type SetWorldTransformCommand struct {
	Matrix device.Matrix
}

// Type implements Command.
func (SetWorldTransformCommand) Type() CommandType { return CmdSetWorldTransform }

// ScaleWorldTransformCommand records ScaleWorldTransform.
type ScaleWorldTransformCommand struct {
	SX, SY float64
}

// Type implements Command.
func (ScaleWorldTransformCommand) Type() CommandType { return CmdScaleWorldTransform }

// SetGraphicsModeCommand records SetGraphicsMode.
type SetGraphicsModeCommand struct {
	Mode device.GraphicsMode
}

// Type implements Command.
func (SetGraphicsModeCommand) Type() CommandType { return CmdSetGraphicsMode }

// DrawPackedImageCommand records DrawPackedImage. Image is the caller's
// value and must not be modified.
type DrawPackedImageCommand struct {
	Image *device.PackedImage
	Dst   device.Rect
	Src   image.Rectangle
}

// Type implements Command.
func (DrawPackedImageCommand) Type() CommandType { return CmdDrawPackedImage }
