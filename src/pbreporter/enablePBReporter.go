/*
Copyright (c) YugabyteDB, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package pbreporter

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type EnablePBReporter struct {
	progressContainer *mpb.Progress
	bar               *mpb.Bar
}

// Bytes read from the source drive the bar. Sources without a known size
// (gzip objects, chunked HTTP) get a plain byte counter and no ETA.
func newEnablePBReporter(out io.Writer, name string, totalBytes int64) *EnablePBReporter {
	sized := totalBytes > 0
	prepend := []decor.Decorator{decor.Name(name, decor.WCSyncSpaceR)}
	appendDecors := []decor.Decorator{
		decor.OnComplete(decor.AverageSpeed(decor.SizeB1024(0), "% .1f"), "done"),
	}
	if sized {
		prepend = append(prepend, decor.Counters(decor.SizeB1024(0), "% .1f / % .1f", decor.WCSyncSpaceR))
		appendDecors = append([]decor.Decorator{
			decor.OnComplete(decor.NewPercentage("%.2f", decor.WCSyncSpaceR), ""),
			decor.OnComplete(decor.AverageETA(decor.ET_STYLE_GO, decor.WCSyncSpaceR), ""),
		}, appendDecors...)
	} else {
		totalBytes = 0
		prepend = append(prepend, decor.Current(decor.SizeB1024(0), "% .1f", decor.WCSyncSpaceR))
	}

	p := mpb.New(mpb.WithOutput(out))
	bar := p.AddBar(totalBytes,
		mpb.BarFillerClearOnComplete(),
		mpb.PrependDecorators(prepend...),
		mpb.AppendDecorators(appendDecors...),
	)
	return &EnablePBReporter{progressContainer: p, bar: bar}
}

func (pbr *EnablePBReporter) WrapReader(r io.Reader) io.Reader {
	return pbr.bar.ProxyReader(r)
}

func (pbr *EnablePBReporter) Complete() {
	pbr.bar.SetTotal(-1, true)
	pbr.progressContainer.Wait()
}

func (pbr *EnablePBReporter) Abort() {
	pbr.bar.Abort(false)
	pbr.progressContainer.Wait()
}
