package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pdf/fpdf"
	"golang.org/x/net/html"

	"pathnottaken-go/internal/model"
)

// Filename 导出时使用的文件名
const Filename = "counterfactual-analysis.pdf"

const (
	margin     = 20.0
	fontFamily = "Helvetica"
)

// Options 渲染选项
type Options struct {
	GeneratedAt time.Time // 页脚日期，零值时取当前时间
	Compress    bool      // false 时内容流保持明文，便于检查
}

// RenderPDF 把分析结果渲染成A4报告
// 顺序：Alternate Timelines, Tradeoffs Avoided, Hidden Costs, Irreversibility Signals, Reflection Summary
func RenderPDF(w io.Writer, result *model.SimulationResult, opts Options) error {
	if result == nil {
		return errors.New("nil simulation result")
	}

	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(opts.Compress)
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)
	pdf.SetTitle("Counterfactual Analysis Report", false)
	pdf.SetCreator("PathNotTaken", false)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)

	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 5, "Generated on "+generatedAt.Format("January 2, 2006"), "", 0, "L", false, 0, "")
		pdf.SetX(margin)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	r.header()

	r.sectionTitle("Alternate Timelines")
	for _, timeline := range result.AlternateTimelines {
		r.ensureSpace(25)
		pdf.SetFont(fontFamily, "B", 11)
		pdf.SetTextColor(50, 50, 50)
		r.paragraph(6, timeline.PathName)

		pdf.SetFont(fontFamily, "", 10)
		pdf.SetTextColor(60, 60, 60)
		r.paragraph(5, timeline.Narrative)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	r.bulleted("Tradeoffs Avoided", result.AvoidedTradeoffs)
	r.bulleted("Hidden Costs of the Chosen Path", result.HiddenCosts)
	r.bulleted("Irreversibility Signals", result.IrreversibilitySignals)

	r.ensureSpace(30)
	r.sectionTitle("Reflection Summary")
	pdf.SetFont(fontFamily, "I", 10)
	pdf.SetTextColor(60, 60, 60)
	r.paragraph(5, result.ReflectionSummary)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return pdf.Output(w)
}

type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (r *renderer) header() {
	r.pdf.SetFont(fontFamily, "B", 24)
	r.pdf.SetTextColor(30, 30, 30)
	r.pdf.CellFormat(0, 10, "PathNotTaken", "", 1, "L", false, 0, "")

	r.pdf.SetFont(fontFamily, "", 12)
	r.pdf.SetTextColor(100, 100, 100)
	r.pdf.CellFormat(0, 6, "Counterfactual Analysis Report", "", 1, "L", false, 0, "")

	pageWidth, _ := r.pdf.GetPageSize()
	y := r.pdf.GetY() + 2
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.Line(margin, y, pageWidth-margin, y)
	r.pdf.Ln(12)
}

// ensureSpace 剩余空间不够时换页，避免标题落在页尾
func (r *renderer) ensureSpace(height float64) {
	_, pageHeight := r.pdf.GetPageSize()
	if r.pdf.GetY()+height > pageHeight-margin {
		r.pdf.AddPage()
	}
}

func (r *renderer) sectionTitle(title string) {
	r.ensureSpace(20)
	r.pdf.SetFont(fontFamily, "B", 14)
	r.pdf.SetTextColor(30, 30, 30)
	r.pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func (r *renderer) paragraph(lineHeight float64, text string) {
	r.pdf.MultiCell(0, lineHeight, r.tr(plainText(text)), "", "L", false)
}

func (r *renderer) bulleted(title string, items []string) {
	r.sectionTitle(title)
	r.pdf.SetFont(fontFamily, "", 10)
	r.pdf.SetTextColor(60, 60, 60)
	for _, item := range items {
		r.paragraph(5, "• "+item)
		r.pdf.Ln(2)
	}
	r.pdf.Ln(6)
}

// 模型偶尔输出的简单排版标签
var markupTags = map[string]bool{
	"b": true, "i": true, "em": true, "strong": true,
	"p": true, "br": true, "li": true, "ul": true,
}

// plainText 只有整段都是简单排版标签时才去掉标签，其他文本原样保留
// 例如 "Salary<Equity upside" 不是标签，不能交给HTML解析器吞掉
func plainText(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	body := doc.Find("body")
	if body.Length() == 0 {
		return s
	}

	var b strings.Builder
	tags := 0
	if !flatten(body.Nodes[0], &b, &tags) || tags == 0 {
		return s
	}
	return strings.TrimSpace(b.String())
}

// flatten 收集文本，遇到不认识的节点返回false
func flatten(n *html.Node, b *strings.Builder, tags *int) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			if !markupTags[c.Data] {
				return false
			}
			*tags++
			if c.Data == "br" {
				b.WriteString("\n")
				continue
			}
			if !flatten(c, b, tags) {
				return false
			}
			if c.Data == "p" || c.Data == "li" {
				b.WriteString("\n")
			}
		default:
			return false
		}
	}
	return true
}
