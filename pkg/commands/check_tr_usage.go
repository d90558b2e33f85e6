package commands

import (
	"bufio"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

type trUsage struct {
	Key  string
	File string
	Line int
}

var templTCallRe = regexp.MustCompile(`\.T\("([^"]+)"\)`)

var defaultLanguages = []string{"en", "ru"}

// CheckTrUsage scans the Go sources under root for translation keys and
// fails when one of them is missing from any allowed locale of bundle.
func CheckTrUsage(root string, bundle *i18n.Bundle, allowedLanguages []string, logger *logrus.Logger) error {
	if len(allowedLanguages) == 0 {
		allowedLanguages = defaultLanguages
	}

	usages, err := collectTrUsages(root)
	if err != nil {
		return err
	}
	if len(usages) == 0 {
		return fmt.Errorf("no translation usages found under %s", root)
	}

	messages := bundle.Messages()
	allowed, err := allowedTags(bundle, allowedLanguages)
	if err != nil {
		return err
	}

	type missingKey struct {
		Locale string
		Key    string
		File   string
		Line   int
	}

	var missing []missingKey
	seen := make(map[string]bool)
	for _, u := range usages {
		if u.Key == "" || seen[u.Key] {
			continue
		}
		seen[u.Key] = true

		for _, code := range allowedLanguages {
			if messages[allowed[code]][u.Key] == nil {
				missing = append(missing, missingKey{
					Locale: code,
					Key:    u.Key,
					File:   u.File,
					Line:   u.Line,
				})
			}
		}
	}

	if len(missing) > 0 {
		for _, m := range missing {
			logger.WithFields(logrus.Fields{
				"locale": m.Locale,
				"key":    m.Key,
				"source": fmt.Sprintf("%s:%d", m.File, m.Line),
			}).Error("Translation key missing in allowed locales")
		}
		return fmt.Errorf("%d translation keys are missing in allowed locales", len(missing))
	}

	logger.WithFields(logrus.Fields{
		"allowed_locales": strings.Join(allowedLanguages, ", "),
		"unique_keys":     len(seen),
	}).Info("All translation usages are present in allowed locales")
	return nil
}

// CheckTrKeys reports keys that exist in some allowed locale but not in all of them.
func CheckTrKeys(bundle *i18n.Bundle, allowedLanguages []string, logger *logrus.Logger) error {
	if len(allowedLanguages) == 0 {
		allowedLanguages = defaultLanguages
	}
	messages := bundle.Messages()
	allowed, err := allowedTags(bundle, allowedLanguages)
	if err != nil {
		return err
	}

	union := make(map[string]struct{})
	for _, code := range allowedLanguages {
		for key := range messages[allowed[code]] {
			union[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(union))
	for key := range union {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	missing := 0
	for _, key := range keys {
		for _, code := range allowedLanguages {
			if messages[allowed[code]][key] == nil {
				missing++
				logger.WithFields(logrus.Fields{
					"locale": code,
					"key":    key,
				}).Error("Translation key missing")
			}
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d translation keys are missing across locales", missing)
	}
	logger.WithField("keys", len(keys)).Info("All locales define the same translation keys")
	return nil
}

func allowedTags(bundle *i18n.Bundle, codes []string) (map[string]language.Tag, error) {
	messages := bundle.Messages()
	allowed := make(map[string]language.Tag, len(codes))
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed language %q: %w", code, err)
		}
		if messages[tag] == nil {
			return nil, fmt.Errorf("allowed language %q (%s) not found in bundle", code, tag)
		}
		allowed[code] = tag
	}
	return allowed, nil
}

func collectTrUsages(root string) ([]trUsage, error) {
	var usages []trUsage

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			switch d.Name() {
			case ".git", "vendor", "node_modules", "_examples", "testdata":
				return fs.SkipDir
			}
			return nil
		}

		switch {
		case strings.HasSuffix(rel, "_test.go"):
			return nil
		case strings.HasSuffix(rel, ".go"):
			fileUsages, err := collectTrUsagesFromGoFile(path, rel)
			if err != nil {
				return err
			}
			usages = append(usages, fileUsages...)
		case strings.HasSuffix(rel, ".templ"):
			fileUsages, err := collectTrUsagesFromTemplFile(path, rel)
			if err != nil {
				return err
			}
			usages = append(usages, fileUsages...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return usages, nil
}

func collectTrUsagesFromTemplFile(absPath, relPath string) ([]trUsage, error) {
	f, err := os.Open(absPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var usages []trUsage
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		for _, m := range templTCallRe.FindAllStringSubmatchIndex(text, -1) {
			if len(m) < 4 {
				continue
			}
			usages = append(usages, trUsage{
				Key:  text[m[2]:m[3]],
				File: relPath,
				Line: line,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return usages, nil
}

// collectTrUsagesFromGoFile finds keys passed to T and MustT, either as the
// first argument (pageCtx.T("Key")) or after a context (intl.T(ctx, "Key")),
// plus MessageID fields and the Name of navigation items.
func collectTrUsagesFromGoFile(absPath, relPath string) ([]trUsage, error) {
	src, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, absPath, src, 0)
	if err != nil {
		return nil, err
	}

	var usages []trUsage
	add := func(expr ast.Expr) {
		if key, ok := stringLiteral(expr); ok {
			pos := fset.Position(expr.Pos())
			usages = append(usages, trUsage{Key: key, File: relPath, Line: pos.Line})
		}
	}

	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.CallExpr:
			selector, ok := node.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			switch selector.Sel.Name {
			case "T", "MustT":
				for i, arg := range node.Args {
					if i > 1 {
						break
					}
					if _, ok := stringLiteral(arg); ok {
						add(arg)
						break
					}
				}
			}
		case *ast.CompositeLit:
			field := "MessageID"
			if isNavigationItem(node.Type) {
				field = "Name"
			}
			for _, elt := range node.Elts {
				kv, ok := elt.(*ast.KeyValueExpr)
				if !ok {
					continue
				}
				keyIdent, ok := kv.Key.(*ast.Ident)
				if !ok || keyIdent.Name != field {
					continue
				}
				add(kv.Value)
			}
		}
		return true
	})

	return usages, nil
}

func isNavigationItem(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.SelectorExpr:
		return t.Sel.Name == "NavigationItem"
	case *ast.Ident:
		return t.Name == "NavigationItem"
	}
	return false
}

func stringLiteral(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	unquoted, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return unquoted, true
}
