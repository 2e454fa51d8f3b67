package eval

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cwbudde/go-eval/pkg/variant"
)

// localTime breaks the evaluation timestamp down in the host's local time
// zone.
func localTime(ctx *Context) time.Time {
	return time.Unix(ctx.ts.Sec, 0).Local()
}

// executeDate returns the local date as "YYYYMMDD".
func executeDate(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 0 {
		return invalidArgCount(ctx, tok)
	}

	tm := localTime(ctx)
	value := fmt.Sprintf("%.4d%.2d%.2d", tm.Year(), int(tm.Month()), tm.Day())
	out.functionReturn(0, variant.NewString(value))

	return nil
}

// executeTime returns the local time of day as "HHMMSS".
func executeTime(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 0 {
		return invalidArgCount(ctx, tok)
	}

	tm := localTime(ctx)
	value := fmt.Sprintf("%.2d%.2d%.2d", tm.Hour(), tm.Minute(), tm.Second())
	out.functionReturn(0, variant.NewString(value))

	return nil
}

// executeNow returns the evaluation timestamp seconds as a decimal string.
func executeNow(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 0 {
		return invalidArgCount(ctx, tok)
	}

	out.functionReturn(0, variant.NewString(strconv.FormatInt(ctx.ts.Sec, 10)))

	return nil
}

// executeDayOfWeek returns the local day of week, Monday=1 through
// Sunday=7.
func executeDayOfWeek(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 0 {
		return invalidArgCount(ctx, tok)
	}

	wday := int(localTime(ctx).Weekday())
	if wday == 0 {
		wday = 7
	}
	out.functionReturn(0, variant.NewString(strconv.Itoa(wday)))

	return nil
}

// executeDayOfMonth returns the local day of month as a decimal string.
func executeDayOfMonth(ctx *Context, tok *Token, out *outputStack) error {
	if tok.Args != 0 {
		return invalidArgCount(ctx, tok)
	}

	out.functionReturn(0, variant.NewString(strconv.Itoa(localTime(ctx).Day())))

	return nil
}
