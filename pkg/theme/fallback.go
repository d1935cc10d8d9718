package theme

import (
	"fmt"
	"strings"
)

// BlockNames builds the candidate block names for a compound view, most
// specific first. Each prefix yields prefix_suffix, qualified with
// category_ unless the prefix already is the category. Repeated candidates
// (a type listed as its own parent) are kept once.
func BlockNames(category, suffix string, prefixes []string) []string {
	names := make([]string, 0, len(prefixes))
	seen := make(map[string]struct{}, len(prefixes))
	for _, prefix := range prefixes {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			continue
		}
		name := prefix + "_" + suffix
		if prefix != category {
			name = category + "_" + name
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// GenericBlockName is the least specific name for a category and suffix.
func GenericBlockName(category, suffix string) string {
	return category + "_" + suffix
}

// Decorate returns a copy of ctx with block_name and block_theme set for the
// most specific candidate any theme defines. Candidates are the outer loop
// and themes are scanned in registration order, unlike RenderBlock. When
// nothing matches, block_name is the generic category_suffix name and
// block_theme is left unset.
func (r *Resolver) Decorate(themes []string, ctx Context, prefixes []string, category, suffix string) (Context, error) {
	decorated := ctx.Clone()
	decorated[KeyBlockName] = GenericBlockName(category, suffix)

	for _, name := range BlockNames(category, suffix, prefixes) {
		for _, themeName := range themes {
			tpl, err := r.load(themeName)
			if err != nil {
				return nil, err
			}
			ok, err := tpl.HasBlock(name, decorated)
			if err != nil {
				return nil, fmt.Errorf("theme: check block %q in %q: %w", name, themeName, err)
			}
			if ok {
				decorated[KeyBlockName] = name
				decorated[KeyBlockTheme] = themeName
				r.logger.Debug().Str("block_name", name).Str("block_theme", themeName).Msg("block decorated")
				return decorated, nil
			}
		}
	}

	return decorated, nil
}

// RenderDecorated renders the block frozen by Decorate. Without a
// block_theme the generic name goes through RenderBlock, which fails with a
// BlockNotFoundError when no theme defines it.
func (r *Resolver) RenderDecorated(themes []string, ctx Context) (string, error) {
	block := ctx.String(KeyBlockName)
	if block == "" {
		return "", fmt.Errorf("theme: context has no %s", KeyBlockName)
	}

	themeName := ctx.String(KeyBlockTheme)
	if themeName == "" {
		return r.RenderBlock(themes, block, ctx)
	}

	tpl, err := r.load(themeName)
	if err != nil {
		return "", err
	}
	blockCtx := ctx.Clone()
	blockCtx[KeyTheme] = themeName
	out, err := tpl.RenderBlock(block, blockCtx)
	if err != nil {
		return "", fmt.Errorf("theme: render block %q from %q: %w", block, themeName, err)
	}
	return out, nil
}
