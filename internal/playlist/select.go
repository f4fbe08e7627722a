package playlist

// SelectVariant chooses the first variant, in manifest order, whose
// resolution is declared and whose bandwidth equals target exactly.
//
// Exact matching is a deliberately simple placeholder policy; swapping in
// nearest-below-capacity selection only requires replacing this function.
func SelectVariant(master *MasterPlaylist, target int64) (VariantStream, error) {
	for _, v := range master.Variants {
		if v.Resolution != nil && v.Bandwidth == target {
			return v, nil
		}
	}
	return VariantStream{}, ErrNoVariantFound
}
