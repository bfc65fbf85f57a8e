// Package pdfdoc adapts native PDF files to the conversion pipeline's
// collaborator contract. Text runs are read with the ledongthuc/pdf
// parser and grouped into line fragments with top-left-origin geometry;
// embedded images are pulled out with pdfcpu's extraction API. PDF
// binary parsing itself stays inside those libraries.
package pdfdoc
