// Package chm2md splits a help archive exported from CHM into numbered
// Markdown chapters, each with its own image folder.
//
// # Quick Start
//
//	p, err := chm2md.NewPipeline(chm2md.ModeHTML, chm2md.DefaultLayout(chm2md.ModeHTML))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := p.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Path)
//
// # Pipelines
//
// ModeHTML reads HTML pages, flattens "../Pictures/" to "Pictures/", runs
// a converter (pandoc by default) and continues with the Markdown it wrote.
// ModeMarkdown starts from existing Markdown chapters that share one image
// pool.
//
// Both then, unit by unit in file name order:
//
//  1. Collect the distinct "Pictures/..." references in the chapter text.
//  2. Copy each referenced image from the pool into "NN-Pictures/".
//     A missing image is logged and counted; the run goes on.
//  3. Rewrite "Pictures/" to "NN-Pictures/" and write the chapter once.
//
// Chapters without references get no image folder and are not rewritten.
// A summary report (README.md) is written last.
//
// # Failures
//
// A conversion failure stops the run. WithKeepGoing records the failure
// on the unit instead, processes the remaining units, and Run returns
// ErrUnitsFailed together with the report.
package chm2md
