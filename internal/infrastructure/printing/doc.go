// Package printing renders maintenance work orders into paginated PDF
// documents.
//
// Rendering runs in two passes. The first pass lays out a fixed sequence of
// flowables (paragraphs, headings, spacers, tables and the optional logo)
// and records one PageSnapshot per page: the ordered draw operations and
// the graphics state at the moment the page closed. Once the total page
// count is known, the second pass replays every snapshot into the output
// document and stamps the footer, so every page, the first included, can
// print "Page K of N".
//
// Example usage:
//
//	renderer, err := NewLayoutRenderer(&RendererConfig{
//	    PaperSize: printing.PaperSizeA4,
//	    Logo:      NewFileLogoProvider("assets/logo.png", logger),
//	    Logger:    logger,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := renderer.Render(ctx, order)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Generated %s: %d pages\n", result.Filename, result.PageCount)
package printing
