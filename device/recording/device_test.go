package recording

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gprint/device"
)

func TestCommandType_String(t *testing.T) {
	tests := []struct {
		ct   CommandType
		want string
	}{
		{CmdStartPage, "StartPage"},
		{CmdBezierTo, "BezierTo"},
		{CmdSelectStyledPen, "SelectStyledPen"},
		{CmdTextOut, "TextOut"},
		{CmdDrawPackedImage, "DrawPackedImage"},
		{CommandType(254), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ct.String(); got != tt.want {
				t.Errorf("CommandType.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDevice_RecordsInOrder(t *testing.T) {
	d := New()
	if err := d.StartPage(); err != nil {
		t.Fatalf("StartPage() error = %v", err)
	}
	d.BeginPath()
	d.MoveTo(1, 2)
	d.LineTo(3, 4)
	d.CloseFigure()
	d.EndPath()
	d.FillPath()
	if err := d.EndPage(); err != nil {
		t.Fatalf("EndPage() error = %v", err)
	}

	want := []CommandType{
		CmdStartPage, CmdBeginPath, CmdMoveTo, CmdLineTo,
		CmdCloseFigure, CmdEndPath, CmdFillPath, CmdEndPage,
	}
	cmds := d.Commands()
	if len(cmds) != len(want) {
		t.Fatalf("len(Commands()) = %d, want %d", len(cmds), len(want))
	}
	for i, c := range cmds {
		if c.Type() != want[i] {
			t.Errorf("Commands()[%d] = %v, want %v", i, c.Type(), want[i])
		}
	}
	if d.Pages() != 1 {
		t.Errorf("Pages() = %d, want 1", d.Pages())
	}
}

func TestDevice_PageProtocol(t *testing.T) {
	t.Run("draw outside page", func(t *testing.T) {
		d := New()
		d.FillRect(device.Rect{W: 1, H: 1})
		if !errors.Is(d.Err(), device.ErrNoPage) {
			t.Errorf("Err() = %v, want ErrNoPage", d.Err())
		}
		if n := d.Count(CmdFillRect); n != 0 {
			t.Errorf("Count(FillRect) = %d, want 0", n)
		}
	})

	t.Run("page in progress", func(t *testing.T) {
		d := New()
		_ = d.StartPage()
		if err := d.StartPage(); !errors.Is(err, device.ErrPageInProgress) {
			t.Errorf("StartPage() error = %v, want ErrPageInProgress", err)
		}
	})

	t.Run("abort page", func(t *testing.T) {
		d := New()
		_ = d.StartPage()
		d.FillRect(device.Rect{W: 1, H: 1})
		if err := d.AbortPage(); err != nil {
			t.Fatalf("AbortPage() error = %v", err)
		}
		if d.Pages() != 0 {
			t.Errorf("Pages() after AbortPage = %d, want 0", d.Pages())
		}
		if err := d.AbortPage(); !errors.Is(err, device.ErrNoPage) {
			t.Errorf("second AbortPage() error = %v, want ErrNoPage", err)
		}
	})

	t.Run("abort then start", func(t *testing.T) {
		d := New()
		_ = d.StartPage()
		_ = d.AbortPage()
		if err := d.StartPage(); err != nil {
			t.Fatalf("StartPage() error = %v", err)
		}
		_ = d.EndPage()
		if d.Pages() != 1 {
			t.Errorf("Pages() = %d, want 1", d.Pages())
		}
		if n := d.Count(CmdAbortPage); n != 1 {
			t.Errorf("Count(AbortPage) = %d, want 1", n)
		}
	})

	t.Run("closed", func(t *testing.T) {
		d := New()
		if err := d.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if err := d.Close(); err != nil {
			t.Errorf("second Close() error = %v", err)
		}
		if err := d.StartPage(); !errors.Is(err, device.ErrClosed) {
			t.Errorf("StartPage() error = %v, want ErrClosed", err)
		}
	})
}

func TestDevice_FailureIsSticky(t *testing.T) {
	boom := errors.New("spooler gone")
	d := New(WithFailure(3, boom))
	_ = d.StartPage()
	d.BeginPath()
	d.MoveTo(0, 0)
	d.LineTo(1, 1)
	d.EndPath()

	if !errors.Is(d.Err(), boom) {
		t.Fatalf("Err() = %v, want %v", d.Err(), boom)
	}
	if n := len(d.Commands()); n != 3 {
		t.Errorf("len(Commands()) = %d, want 3", n)
	}
	if err := d.EndPage(); !errors.Is(err, boom) {
		t.Errorf("EndPage() error = %v, want %v", err, boom)
	}
}

func TestDevice_WorldTransform(t *testing.T) {
	d := New()
	_ = d.StartPage()
	d.SetWorldTransform(device.Matrix{A: 2, E: 2, C: 10, F: 20})
	d.ScaleWorldTransform(0.5, 0.25)

	got := d.WorldTransform()
	want := device.Matrix{A: 1, E: 0.5, C: 10, F: 20}
	if got != want {
		t.Fatalf("WorldTransform() = %+v, want %+v", got, want)
	}

	d.MoveTo(4, 8)
	mv := Filter[MoveToCommand](d.Commands())
	if len(mv) != 1 {
		t.Fatalf("MoveTo commands = %d, want 1", len(mv))
	}
	if mv[0].Page != [2]float64{14, 24} {
		t.Errorf("MoveTo page point = %v, want [14 24]", mv[0].Page)
	}

	_ = d.EndPage()
	_ = d.StartPage()
	if got := d.WorldTransform(); got != device.Identity() {
		t.Errorf("WorldTransform() after StartPage = %+v, want identity", got)
	}
}

func TestDevice_CompatibleModeDropsShear(t *testing.T) {
	d := New()
	_ = d.StartPage()
	d.SetWorldTransform(device.Matrix{A: 1, B: 0.5, D: 0.5, E: 1})
	if got := d.WorldTransform(); got.B != 0 || got.D != 0 {
		t.Errorf("compatible WorldTransform() = %+v, want no shear", got)
	}

	d.SetGraphicsMode(device.GraphicsModeAdvanced)
	d.SetWorldTransform(device.Matrix{A: 1, B: 0.5, D: 0.5, E: 1})
	if got := d.WorldTransform(); got.B != 0.5 || got.D != 0.5 {
		t.Errorf("advanced WorldTransform() = %+v, want shear kept", got)
	}
}

func TestDevice_ScriptedAnswers(t *testing.T) {
	d := New(
		WithFonts(func(spec device.FontSpec) bool { return spec.Family == "Go" }),
		WithStyledPens(func(c device.LineCap, _ device.LineJoin) bool { return c != device.LineCapSquare }),
		WithMeasure(func(_ device.FontSpec, s string) int { return 7 * len(s) }),
	)
	_ = d.StartPage()

	if d.SelectFont(device.FontSpec{Family: "Missing", Size: 10}) {
		t.Error("SelectFont(Missing) = true, want false")
	}
	if !d.SelectFont(device.FontSpec{Family: "Go", Size: 10}) {
		t.Error("SelectFont(Go) = false, want true")
	}
	if d.SelectStyledPen(device.LineCapSquare, device.LineJoinMiter, 10, 2, device.Black) {
		t.Error("SelectStyledPen(Square) = true, want false")
	}
	if !d.SelectStyledPen(device.LineCapButt, device.LineJoinBevel, 10, 2, device.Black) {
		t.Error("SelectStyledPen(Butt) = false, want true")
	}
	if got := d.MeasureString("abc"); got != 21 {
		t.Errorf("MeasureString() = %d, want 21", got)
	}

	d.TextOut("abc", 1, 2, []float64{1, 0, 2, 0, 3, 0})
	outs := Filter[TextOutCommand](d.Commands())
	if len(outs) != 1 {
		t.Fatalf("TextOut commands = %d, want 1", len(outs))
	}
	if outs[0].Font.Family != "Go" {
		t.Errorf("TextOut font = %q, want Go", outs[0].Font.Family)
	}
	if len(outs[0].Advances) != 6 {
		t.Errorf("TextOut advances = %v, want 6 values", outs[0].Advances)
	}

	d.BeginPath()
	d.MoveTo(0, 0)
	d.LineTo(5, 0)
	d.EndPath()
	d.StrokePath()
	strokes := Filter[StrokePathCommand](d.Commands())
	if len(strokes) != 1 || strokes[0].Pen.Join != device.LineJoinBevel {
		t.Errorf("StrokePath pen = %+v, want the bevel pen", strokes)
	}
}

func TestDevice_NoNativeText(t *testing.T) {
	caps := device.DefaultCapabilities()
	caps.NativeText = false
	d := New(WithCapabilities(caps))
	_ = d.StartPage()
	if d.SelectFont(device.FontSpec{Family: "Go", Size: 12}) {
		t.Error("SelectFont() = true on a device without native text")
	}
}

func TestDevice_DrawPackedImage(t *testing.T) {
	d := New()
	_ = d.StartPage()
	img := &device.PackedImage{Width: 2, Height: 2, BitsPerPixel: 24, Stride: device.Stride(2, 24)}
	img.Pix = make([]byte, img.ByteSize())
	d.DrawPackedImage(img, device.Rect{X: 10, Y: 10, W: 20, H: 20}, image.Rect(0, 0, 2, 2))

	blits := Filter[DrawPackedImageCommand](d.Commands())
	if len(blits) != 1 {
		t.Fatalf("DrawPackedImage commands = %d, want 1", len(blits))
	}
	if blits[0].Image != img || blits[0].Dst.W != 20 {
		t.Errorf("DrawPackedImage = %+v", blits[0])
	}
}

func TestRegistered(t *testing.T) {
	if !device.IsRegistered("recording") {
		t.Fatal(`IsRegistered("recording") = false`)
	}
	dev, err := device.Open("recording", device.Config{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, ok := dev.(*Device); !ok {
		t.Errorf("Open() = %T, want *Device", dev)
	}
}
